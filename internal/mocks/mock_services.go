package mocks

import (
	"context"

	"github.com/superhecht1/praxida/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc        func(password string) (string, error)
	VerifyFunc      func(hashedPassword, password string) bool
	DummyVerifyFunc func()

	DummyVerifyCalls int
}

// NewMockPasswordService creates a new MockPasswordService
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

func (m *MockPasswordService) DummyVerify() {
	m.DummyVerifyCalls++
	if m.DummyVerifyFunc != nil {
		m.DummyVerifyFunc()
	}
}

// MockCarrierService implements domain.CarrierService for testing
type MockCarrierService struct {
	EncodeFunc func(sessionID string) (string, error)
	DecodeFunc func(token string) (string, error)
}

// NewMockCarrierService creates a new MockCarrierService
func NewMockCarrierService() *MockCarrierService {
	return &MockCarrierService{}
}

func (m *MockCarrierService) Encode(sessionID string) (string, error) {
	if m.EncodeFunc != nil {
		return m.EncodeFunc(sessionID)
	}
	return "carrier:" + sessionID, nil
}

func (m *MockCarrierService) Decode(token string) (string, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	if len(token) > 8 && token[:8] == "carrier:" {
		return token[8:], nil
	}
	return "", domain.ErrSessionInvalid
}

// MockThrottleService implements domain.ThrottleService for testing
type MockThrottleService struct {
	LockedFunc func(ctx context.Context, email string) bool
}

// NewMockThrottleService creates a new MockThrottleService
func NewMockThrottleService() *MockThrottleService {
	return &MockThrottleService{}
}

func (m *MockThrottleService) Locked(ctx context.Context, email string) bool {
	if m.LockedFunc != nil {
		return m.LockedFunc(ctx, email)
	}
	return false
}

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	IssueFunc           func(ctx context.Context, user *domain.User) (*domain.Session, error)
	ValidateFunc        func(ctx context.Context, sessionID string) (*domain.AuthenticatedContext, error)
	RevokeFunc          func(ctx context.Context, sessionID string) error
	RevokeAllFunc       func(ctx context.Context, userID uint) error
	RevokeAllExceptFunc func(ctx context.Context, userID uint, keepSessionID string) error
}

// NewMockSessionService creates a new MockSessionService
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Issue(ctx context.Context, user *domain.User) (*domain.Session, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user)
	}
	return &domain.Session{ID: "sess-1", UserID: user.ID, TenantID: user.TenantID, Role: user.Role}, nil
}

func (m *MockSessionService) Validate(ctx context.Context, sessionID string) (*domain.AuthenticatedContext, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionInvalid
}

func (m *MockSessionService) Revoke(ctx context.Context, sessionID string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSessionService) RevokeAll(ctx context.Context, userID uint) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	return nil
}

func (m *MockSessionService) RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) error {
	if m.RevokeAllExceptFunc != nil {
		return m.RevokeAllExceptFunc(ctx, userID, keepSessionID)
	}
	return nil
}

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterPracticeFunc func(ctx context.Context, practiceName, adminName, email, password string) (*domain.RegistrationResult, error)
	LoginFunc            func(ctx context.Context, email, password string, origin domain.Origin) (*domain.AuthResult, error)
	LogoutFunc           func(ctx context.Context, sessionID string) error
	ChangePasswordFunc   func(ctx context.Context, identity *domain.AuthenticatedContext, currentPassword, newPassword string) error
	CurrentUserFunc      func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RegisterPractice(ctx context.Context, practiceName, adminName, email, password string) (*domain.RegistrationResult, error) {
	if m.RegisterPracticeFunc != nil {
		return m.RegisterPracticeFunc(ctx, practiceName, adminName, email, password)
	}
	return &domain.RegistrationResult{TenantID: 1, UserID: 1}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, origin domain.Origin) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, origin)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, identity *domain.AuthenticatedContext, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, identity, currentPassword, newPassword)
	}
	return nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID uint) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}
