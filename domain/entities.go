package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold within a practice.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePractitioner  Role = "practitioner"
	RoleAssistant     Role = "assistant"
	RoleIntern        Role = "intern"
	RoleExternal      Role = "external"
)

// ParseRole maps a string to a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdministrator:
		return RoleAdministrator, nil
	case RolePractitioner:
		return RolePractitioner, nil
	case RoleAssistant:
		return RoleAssistant, nil
	case RoleIntern:
		return RoleIntern, nil
	case RoleExternal:
		return RoleExternal, nil
	default:
		return "", ErrValidation
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// RoleSet is a membership predicate over roles, used for guard composition.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether the role is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// NormalizeEmail lowers and trims an email so lookups and the attempt ledger
// agree on one canonical identity string.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Tenant represents an isolated practice. Tenants are never hard-deleted;
// deactivation flips IsActive and invalidates every session of its users.
type Tenant struct {
	ID        uint
	Name      string
	Slug      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User represents an account bound to exactly one tenant. The tenant binding
// is immutable after creation.
type User struct {
	ID              uint
	TenantID        uint
	Name            string
	Email           string
	PasswordHash    string
	Role            Role
	IsActive        bool
	LastLoginAt     *time.Time
	AccessExpiresAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AccessExpired reports whether a time-boxed account has run out at the given
// instant. Accounts without an expiry never expire.
func (u *User) AccessExpired(now time.Time) bool {
	return u.AccessExpiresAt != nil && !now.Before(*u.AccessExpiresAt)
}

// LoginAttempt is one append-only ledger entry. Attempts against unknown
// emails are recorded too, so enumeration probes count toward the throttle.
type LoginAttempt struct {
	ID        uint
	Email     string
	Success   bool
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Origin describes where a login request came from.
type Origin struct {
	IPAddress string
	UserAgent string
}

// Session is an established authenticated session. The tenant id and role are
// denormalized at issuance; validation re-checks both against the live user.
type Session struct {
	ID         string
	UserID     uint
	TenantID   uint
	Role       Role
	CreatedAt  time.Time
	LastSeenAt time.Time
	ExpiresAt  time.Time
	Rolling    bool
}

// Expired reports whether the session's absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AuthenticatedContext is the identity value the access guard attaches to a
// request. It is the only way downstream handlers learn who is calling.
type AuthenticatedContext struct {
	UserID    uint
	TenantID  uint
	Role      Role
	SessionID string
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	User      *User
	Session   *Session
	Token     string
	ExpiresIn int64
}

// RegistrationResult carries the ids created by practice registration.
type RegistrationResult struct {
	TenantID uint
	UserID   uint
}

// ClientRecord is a tenant-owned domain resource. It exists here so the
// tenant-possession guard has something concrete to protect.
type ClientRecord struct {
	ID        uuid.UUID
	TenantID  uint
	FullName  string
	Email     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
