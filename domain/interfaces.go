package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TenantRepository defines tenant data access operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	// CreateWithAdmin persists the tenant and its first administrator in one
	// transaction, so a half-registered practice can never exist.
	CreateWithAdmin(ctx context.Context, tenant *Tenant, admin *User) error
	FindByID(ctx context.Context, id uint) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	Deactivate(ctx context.Context, id uint) error
}

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// FindByEmail matches case-insensitively against the stored email.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID uint, at time.Time) error
	Deactivate(ctx context.Context, userID uint) error
}

// LoginAttemptRepository is the append-only ledger of authentication attempts.
type LoginAttemptRepository interface {
	Record(ctx context.Context, attempt *LoginAttempt) error
	// CountRecentFailures counts failed attempts for the identity after the
	// given instant, regardless of origin address.
	CountRecentFailures(ctx context.Context, email string, since time.Time) (int64, error)
	// DeleteOlderThan prunes entries past the retention horizon. Idempotent.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	// Save rewrites an existing session, used for rolling renewal.
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID uint) (int, error)
	ListByUser(ctx context.Context, userID uint) ([]string, error)
}

// ClientRecordRepository defines access to tenant-owned client records.
type ClientRecordRepository interface {
	Create(ctx context.Context, rec *ClientRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*ClientRecord, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]*ClientRecord, error)
	Update(ctx context.Context, rec *ClientRecord) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// AuthService defines the authentication business logic.
type AuthService interface {
	RegisterPractice(ctx context.Context, practiceName, adminName, email, password string) (*RegistrationResult, error)
	Login(ctx context.Context, email, password string, origin Origin) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, identity *AuthenticatedContext, currentPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID uint) (*User, error)
}

// SessionService manages the session lifecycle against the backing store.
type SessionService interface {
	Issue(ctx context.Context, user *User) (*Session, error)
	Validate(ctx context.Context, sessionID string) (*AuthenticatedContext, error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeAll(ctx context.Context, userID uint) error
	RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) error
}

// ThrottleService decides whether an identity is currently locked out. The
// lockout state is derived from the ledger, never stored.
type ThrottleService interface {
	Locked(ctx context.Context, email string) bool
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	// DummyVerify burns the same hashing cost as a real comparison, so
	// rejected identities are indistinguishable from wrong passwords by timing.
	DummyVerify()
}

// CarrierService encodes the opaque session id into the transport token the
// caller presents on each request, and decodes it back.
type CarrierService interface {
	Encode(sessionID string) (string, error)
	Decode(token string) (string, error)
}
