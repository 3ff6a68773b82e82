package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/superhecht1/praxida/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). Emails are
// stored lowercased, which makes the unique index case-insensitive.
type DBUser struct {
	ID              uint   `gorm:"primaryKey"`
	TenantID        uint   `gorm:"index;not null"`
	Name            string `gorm:"size:255"`
	Email           string `gorm:"uniqueIndex;size:255"`
	PasswordHash    string `gorm:"column:password"`
	Role            string `gorm:"index;size:32"`
	IsActive        bool   `gorm:"index"`
	LastLoginAt     *time.Time
	AccessExpiresAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(userToDB(user)).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("password", passwordHash).Error
}

// TouchLastLogin implements domain.UserRepository
func (r *UserRepositoryImpl) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("last_login_at", at).Error
}

// Deactivate implements domain.UserRepository
func (r *UserRepositoryImpl) Deactivate(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("is_active", false).Error
}

// isUniqueViolation recognizes duplicate-key errors from both Postgres and
// the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:              user.ID,
		TenantID:        user.TenantID,
		Name:            user.Name,
		Email:           domain.NormalizeEmail(user.Email),
		PasswordHash:    user.PasswordHash,
		Role:            string(user.Role),
		IsActive:        user.IsActive,
		LastLoginAt:     user.LastLoginAt,
		AccessExpiresAt: user.AccessExpiresAt,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:              dbUser.ID,
		TenantID:        dbUser.TenantID,
		Name:            dbUser.Name,
		Email:           dbUser.Email,
		PasswordHash:    dbUser.PasswordHash,
		Role:            domain.Role(dbUser.Role),
		IsActive:        dbUser.IsActive,
		LastLoginAt:     dbUser.LastLoginAt,
		AccessExpiresAt: dbUser.AccessExpiresAt,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
}
