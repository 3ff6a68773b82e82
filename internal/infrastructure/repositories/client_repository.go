package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/superhecht1/praxida/domain"
)

// ClientRecordRepositoryImpl implements domain.ClientRecordRepository using GORM
type ClientRecordRepositoryImpl struct {
	db *gorm.DB
}

// DBClientRecord represents the database model for ClientRecord
type DBClientRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	TenantID  uint   `gorm:"index;not null"`
	FullName  string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBClientRecord) TableName() string {
	return "client_records"
}

// NewClientRecordRepository creates a new client record repository
func NewClientRecordRepository(db *gorm.DB) domain.ClientRecordRepository {
	return &ClientRecordRepositoryImpl{db: db}
}

// Create implements domain.ClientRecordRepository
func (r *ClientRecordRepositoryImpl) Create(ctx context.Context, rec *domain.ClientRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(clientToDB(rec)).Error
}

// FindByID implements domain.ClientRecordRepository
func (r *ClientRecordRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ClientRecord, error) {
	var dbRec DBClientRecord
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&dbRec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return clientToDomain(&dbRec)
}

// ListByTenant implements domain.ClientRecordRepository
func (r *ClientRecordRepositoryImpl) ListByTenant(ctx context.Context, tenantID uint) ([]*domain.ClientRecord, error) {
	var dbRecs []DBClientRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&dbRecs).Error
	if err != nil {
		return nil, err
	}

	recs := make([]*domain.ClientRecord, 0, len(dbRecs))
	for i := range dbRecs {
		rec, err := clientToDomain(&dbRecs[i])
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Update implements domain.ClientRecordRepository
func (r *ClientRecordRepositoryImpl) Update(ctx context.Context, rec *domain.ClientRecord) error {
	return r.db.WithContext(ctx).Save(clientToDB(rec)).Error
}

// SoftDelete implements domain.ClientRecordRepository
func (r *ClientRecordRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&DBClientRecord{}).Error
}

func clientToDB(rec *domain.ClientRecord) *DBClientRecord {
	return &DBClientRecord{
		ID:       rec.ID.String(),
		TenantID: rec.TenantID,
		FullName: rec.FullName,
		Email:    rec.Email,
		Notes:    rec.Notes,
	}
}

func clientToDomain(dbRec *DBClientRecord) (*domain.ClientRecord, error) {
	id, err := uuid.Parse(dbRec.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ClientRecord{
		ID:        id,
		TenantID:  dbRec.TenantID,
		FullName:  dbRec.FullName,
		Email:     dbRec.Email,
		Notes:     dbRec.Notes,
		CreatedAt: dbRec.CreatedAt,
		UpdatedAt: dbRec.UpdatedAt,
	}, nil
}
