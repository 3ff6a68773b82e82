package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/superhecht1/praxida/domain"
)

// LoginAttemptRepositoryImpl implements domain.LoginAttemptRepository using
// GORM. Rows are only ever inserted, counted and pruned, never updated.
type LoginAttemptRepositoryImpl struct {
	db *gorm.DB
}

// DBLoginAttempt represents the database model for LoginAttempt
type DBLoginAttempt struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index:idx_attempts_email_time;size:255"`
	Success   bool      `gorm:"index"`
	IPAddress string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"index:idx_attempts_email_time"`
}

// TableName returns the table name for GORM
func (DBLoginAttempt) TableName() string {
	return "login_attempts"
}

// NewLoginAttemptRepository creates a new login attempt repository
func NewLoginAttemptRepository(db *gorm.DB) domain.LoginAttemptRepository {
	return &LoginAttemptRepositoryImpl{db: db}
}

// Record implements domain.LoginAttemptRepository
func (r *LoginAttemptRepositoryImpl) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	dbAttempt := &DBLoginAttempt{
		Email:     domain.NormalizeEmail(attempt.Email),
		Success:   attempt.Success,
		IPAddress: attempt.IPAddress,
		UserAgent: attempt.UserAgent,
		CreatedAt: attempt.CreatedAt,
	}
	if dbAttempt.CreatedAt.IsZero() {
		dbAttempt.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(dbAttempt).Error; err != nil {
		return err
	}
	attempt.ID = dbAttempt.ID
	attempt.CreatedAt = dbAttempt.CreatedAt
	return nil
}

// CountRecentFailures implements domain.LoginAttemptRepository
func (r *LoginAttemptRepositoryImpl) CountRecentFailures(ctx context.Context, email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBLoginAttempt{}).
		Where("email = ? AND success = ? AND created_at > ?", domain.NormalizeEmail(email), false, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteOlderThan implements domain.LoginAttemptRepository
func (r *LoginAttemptRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&DBLoginAttempt{})
	return result.RowsAffected, result.Error
}
