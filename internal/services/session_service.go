package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/infrastructure/auth"
	"github.com/superhecht1/praxida/internal/observability"
)

// SessionServiceImpl implements domain.SessionService over the durable
// session store. Validation never trusts the stored copy of the user: the
// bound user is re-fetched every time, and any inconsistency (deactivated,
// access-expired, tenant binding changed) destroys the session on the spot.
type SessionServiceImpl struct {
	sessions domain.SessionRepository
	users    domain.UserRepository
	ttl      time.Duration
	rolling  bool
	log      *zap.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewSessionService creates a session manager with the given absolute TTL.
func NewSessionService(sessions domain.SessionRepository, users domain.UserRepository, ttl time.Duration, rolling bool, log *zap.Logger, metrics *observability.Metrics) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
		rolling:  rolling,
		log:      log,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Issue implements domain.SessionService
func (s *SessionServiceImpl) Issue(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:         auth.NewSessionID(),
		UserID:     user.ID,
		TenantID:   user.TenantID,
		Role:       user.Role,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.ttl),
		Rolling:    s.rolling,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return session, nil
}

// Validate implements domain.SessionService
func (s *SessionServiceImpl) Validate(ctx context.Context, sessionID string) (*domain.AuthenticatedContext, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	now := s.now()
	if session.Expired(now) {
		s.destroy(ctx, session, "expired")
		return nil, domain.ErrSessionExpired
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.destroy(ctx, session, "user_missing")
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if !user.IsActive || user.AccessExpired(now) {
		s.destroy(ctx, session, "user_inactive")
		return nil, domain.ErrSessionInvalid
	}

	// The tenant binding is immutable by contract; if it ever diverges the
	// session is treated as hostile.
	if user.TenantID != session.TenantID {
		s.destroy(ctx, session, "tenant_mismatch")
		return nil, domain.ErrSessionInvalid
	}

	if session.Rolling {
		session.LastSeenAt = now
		session.ExpiresAt = now.Add(s.ttl)
		if err := s.sessions.Save(ctx, session); err != nil {
			// Renewal is best-effort: the session is still valid until its
			// previous expiry.
			s.log.Warn("session: rolling renewal failed", zap.Error(err))
		}
	}

	return &domain.AuthenticatedContext{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Role:      user.Role,
		SessionID: session.ID,
	}, nil
}

// Revoke implements domain.SessionService
func (s *SessionServiceImpl) Revoke(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	s.metrics.SessionsRevoked.WithLabelValues("logout").Inc()
	return nil
}

// RevokeAll implements domain.SessionService
func (s *SessionServiceImpl) RevokeAll(ctx context.Context, userID uint) error {
	n, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	s.metrics.SessionsRevoked.WithLabelValues("revoke_all").Add(float64(n))
	return nil
}

// RevokeAllExcept implements domain.SessionService. Used after a password
// change: every session except the one performing the change is cut off.
func (s *SessionServiceImpl) RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) error {
	ids, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	for _, id := range ids {
		if id == keepSessionID {
			continue
		}
		if err := s.sessions.Delete(ctx, id); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		s.metrics.SessionsRevoked.WithLabelValues("password_change").Inc()
	}
	return nil
}

// destroy removes a session found to be stale or inconsistent. Removal is a
// side effect of detection, not merely a rejection.
func (s *SessionServiceImpl) destroy(ctx context.Context, session *domain.Session, reason string) {
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.log.Warn("session: destroy failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	s.metrics.SessionsRevoked.WithLabelValues(reason).Inc()
}
