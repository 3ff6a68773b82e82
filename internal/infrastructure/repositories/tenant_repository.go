package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/superhecht1/praxida/domain"
)

// TenantRepositoryImpl implements domain.TenantRepository using GORM
type TenantRepositoryImpl struct {
	db *gorm.DB
}

// DBTenant represents the database model for Tenant (with GORM tags)
type DBTenant struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	Slug      string `gorm:"uniqueIndex;size:255"`
	IsActive  bool   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBTenant) TableName() string {
	return "tenants"
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) domain.TenantRepository {
	return &TenantRepositoryImpl{db: db}
}

// Create implements domain.TenantRepository
func (r *TenantRepositoryImpl) Create(ctx context.Context, tenant *domain.Tenant) error {
	dbTenant := tenantToDB(tenant)
	if err := r.db.WithContext(ctx).Create(dbTenant).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTenantExists
		}
		return err
	}
	tenant.ID = dbTenant.ID
	return nil
}

// CreateWithAdmin implements domain.TenantRepository. The tenant and its
// first administrator are written in one transaction.
func (r *TenantRepositoryImpl) CreateWithAdmin(ctx context.Context, tenant *domain.Tenant, admin *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbTenant := tenantToDB(tenant)
		if err := tx.Create(dbTenant).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrTenantExists
			}
			return err
		}
		tenant.ID = dbTenant.ID

		admin.TenantID = dbTenant.ID
		dbUser := userToDB(admin)
		if err := tx.Create(dbUser).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserExists
			}
			return err
		}
		admin.ID = dbUser.ID
		return nil
	})
}

// FindByID implements domain.TenantRepository
func (r *TenantRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	var dbTenant DBTenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbTenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return tenantToDomain(&dbTenant), nil
}

// FindBySlug implements domain.TenantRepository
func (r *TenantRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var dbTenant DBTenant
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&dbTenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return tenantToDomain(&dbTenant), nil
}

// Deactivate implements domain.TenantRepository. Tenants are never removed.
func (r *TenantRepositoryImpl) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBTenant{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func tenantToDB(tenant *domain.Tenant) *DBTenant {
	return &DBTenant{
		ID:       tenant.ID,
		Name:     tenant.Name,
		Slug:     tenant.Slug,
		IsActive: tenant.IsActive,
	}
}

func tenantToDomain(dbTenant *DBTenant) *domain.Tenant {
	return &domain.Tenant{
		ID:        dbTenant.ID,
		Name:      dbTenant.Name,
		Slug:      dbTenant.Slug,
		IsActive:  dbTenant.IsActive,
		CreatedAt: dbTenant.CreatedAt,
		UpdatedAt: dbTenant.UpdatedAt,
	}
}
