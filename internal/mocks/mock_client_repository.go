package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/superhecht1/praxida/domain"
)

// MockClientRecordRepository implements domain.ClientRecordRepository for
// testing. Without overrides it is a working in-memory store.
type MockClientRecordRepository struct {
	CreateFunc       func(ctx context.Context, rec *domain.ClientRecord) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.ClientRecord, error)
	ListByTenantFunc func(ctx context.Context, tenantID uint) ([]*domain.ClientRecord, error)
	UpdateFunc       func(ctx context.Context, rec *domain.ClientRecord) error
	SoftDeleteFunc   func(ctx context.Context, id uuid.UUID) error

	mu   sync.Mutex
	recs map[uuid.UUID]domain.ClientRecord
}

// NewMockClientRecordRepository creates a new MockClientRecordRepository
func NewMockClientRecordRepository() *MockClientRecordRepository {
	return &MockClientRecordRepository{recs: make(map[uuid.UUID]domain.ClientRecord)}
}

func (m *MockClientRecordRepository) Create(ctx context.Context, rec *domain.ClientRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.recs[rec.ID] = *rec
	return nil
}

func (m *MockClientRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ClientRecord, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	copied := rec
	return &copied, nil
}

func (m *MockClientRecordRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*domain.ClientRecord, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ClientRecord
	for _, rec := range m.recs {
		if rec.TenantID == tenantID {
			copied := rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockClientRecordRepository) Update(ctx context.Context, rec *domain.ClientRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = *rec
	return nil
}

func (m *MockClientRecordRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, id)
	return nil
}
