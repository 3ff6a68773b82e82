package mocks

import (
	"context"

	"github.com/superhecht1/praxida/domain"
)

// MockTenantRepository implements domain.TenantRepository interface for testing
type MockTenantRepository struct {
	CreateFunc          func(ctx context.Context, tenant *domain.Tenant) error
	CreateWithAdminFunc func(ctx context.Context, tenant *domain.Tenant, admin *domain.User) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.Tenant, error)
	FindBySlugFunc      func(ctx context.Context, slug string) (*domain.Tenant, error)
	DeactivateFunc      func(ctx context.Context, id uint) error
}

// NewMockTenantRepository creates a new MockTenantRepository with default behaviors
func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{}
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tenant)
	}
	return nil
}

func (m *MockTenantRepository) CreateWithAdmin(ctx context.Context, tenant *domain.Tenant, admin *domain.User) error {
	if m.CreateWithAdminFunc != nil {
		return m.CreateWithAdminFunc(ctx, tenant, admin)
	}
	tenant.ID = 1
	admin.ID = 1
	admin.TenantID = tenant.ID
	return nil
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrTenantNotFound
}

func (m *MockTenantRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrTenantNotFound
}

func (m *MockTenantRepository) Deactivate(ctx context.Context, id uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}
