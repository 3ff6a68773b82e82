package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/observability"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	users       domain.UserRepository
	tenants     domain.TenantRepository
	attempts    domain.LoginAttemptRepository
	sessionSvc  domain.SessionService
	throttleSvc domain.ThrottleService
	passwordSvc domain.PasswordService
	carrierSvc  domain.CarrierService

	minPasswordLength int
	sessionTTL        time.Duration
	log               *zap.Logger
	metrics           *observability.Metrics
	now               func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	users domain.UserRepository,
	tenants domain.TenantRepository,
	attempts domain.LoginAttemptRepository,
	sessionSvc domain.SessionService,
	throttleSvc domain.ThrottleService,
	passwordSvc domain.PasswordService,
	carrierSvc domain.CarrierService,
	minPasswordLength int,
	sessionTTL time.Duration,
	log *zap.Logger,
	metrics *observability.Metrics,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:             users,
		tenants:           tenants,
		attempts:          attempts,
		sessionSvc:        sessionSvc,
		throttleSvc:       throttleSvc,
		passwordSvc:       passwordSvc,
		carrierSvc:        carrierSvc,
		minPasswordLength: minPasswordLength,
		sessionTTL:        sessionTTL,
		log:               log,
		metrics:           metrics,
		now:               time.Now,
	}
}

// RegisterPractice implements domain.AuthService. It creates the tenant and
// its first administrator in one transaction.
func (s *AuthServiceImpl) RegisterPractice(ctx context.Context, practiceName, adminName, email, password string) (*domain.RegistrationResult, error) {
	practiceName = strings.TrimSpace(practiceName)
	if practiceName == "" {
		return nil, fmt.Errorf("%w: practice name required", domain.ErrValidation)
	}
	if len(password) < s.minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, s.minPasswordLength)
	}

	email = domain.NormalizeEmail(email)
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tenant := &domain.Tenant{
		Name:     practiceName,
		Slug:     slugify(practiceName),
		IsActive: true,
	}
	admin := &domain.User{
		Name:         strings.TrimSpace(adminName),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdministrator,
		IsActive:     true,
	}

	if err := s.tenants.CreateWithAdmin(ctx, tenant, admin); err != nil {
		if errors.Is(err, domain.ErrTenantExists) || errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	observability.Audit(s.log, domain.NewAuditEvent(domain.PracticeRegisteredEvent).
		WithUser(admin.ID, tenant.ID).WithEmail(email))

	return &domain.RegistrationResult{TenantID: tenant.ID, UserID: admin.ID}, nil
}

// Login implements domain.AuthService. Unknown email, wrong password, an
// inactive account and lockout all return ErrInvalidCredentials, and all of
// them burn a bcrypt comparison so the timing gives nothing away.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, origin domain.Origin) (*domain.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	if s.throttleSvc.Locked(ctx, email) {
		// The rejection itself counts as a failure, so the window keeps
		// sliding forward while an attack continues.
		s.recordAttempt(ctx, email, false, origin)
		s.passwordSvc.DummyVerify()
		s.metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		observability.Audit(s.log, domain.NewAuditEvent(domain.ThrottleRejectEvent).
			WithEmail(email).WithOrigin(origin).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		user = nil
	}

	if user == nil || !user.IsActive || user.AccessExpired(s.now()) {
		s.recordAttempt(ctx, email, false, origin)
		s.passwordSvc.DummyVerify()
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.recordAttempt(ctx, email, false, origin)
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		observability.Audit(s.log, domain.NewAuditEvent(domain.UserLoginFailureEvent).
			WithUser(user.ID, user.TenantID).WithEmail(email).WithOrigin(origin).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessionSvc.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.carrierSvc.Encode(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session carrier: %w", err)
	}

	s.recordAttempt(ctx, email, true, origin)
	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.log.Warn("login: last-login update failed", zap.Error(err))
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	observability.Audit(s.log, domain.NewAuditEvent(domain.UserLoginEvent).
		WithUser(user.ID, user.TenantID).WithEmail(email).WithOrigin(origin).
		WithSession(session.ID))

	return &domain.AuthResult{
		User:      user,
		Session:   session,
		Token:     token,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionSvc.Revoke(ctx, sessionID); err != nil {
		return err
	}
	observability.Audit(s.log, domain.NewAuditEvent(domain.UserLogoutEvent).WithSession(sessionID))
	return nil
}

// ChangePassword implements domain.AuthService. On success every session of
// the user except the one performing the change is revoked, cutting off
// anyone holding a session obtained with the old password.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, identity *domain.AuthenticatedContext, currentPassword, newPassword string) error {
	if len(newPassword) < s.minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, s.minPasswordLength)
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrSessionInvalid
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := s.sessionSvc.RevokeAllExcept(ctx, user.ID, identity.SessionID); err != nil {
		return err
	}

	observability.Audit(s.log, domain.NewAuditEvent(domain.PasswordChangedEvent).
		WithUser(user.ID, user.TenantID).WithSession(identity.SessionID))
	return nil
}

// CurrentUser implements domain.AuthService
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// recordAttempt appends to the ledger. A write failure must never abort the
// login flow, but it silently weakens throttling, so it is logged at Error
// and counted for alerting.
func (s *AuthServiceImpl) recordAttempt(ctx context.Context, email string, success bool, origin domain.Origin) {
	attempt := &domain.LoginAttempt{
		Email:     email,
		Success:   success,
		IPAddress: origin.IPAddress,
		UserAgent: origin.UserAgent,
		CreatedAt: s.now(),
	}
	if err := s.attempts.Record(ctx, attempt); err != nil {
		s.metrics.LedgerWriteFailures.Inc()
		observability.Audit(s.log, domain.NewAuditEvent(domain.LedgerWriteFailureEvent).
			WithEmail(email).WithError(err))
	}
}

// slugify derives a url-safe tenant slug from the practice name.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
