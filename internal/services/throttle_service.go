package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/observability"
)

// ThrottleServiceImpl implements domain.ThrottleService. Lockout is derived
// from the attempt ledger on every call; there is no stored lockout flag and
// no unlock action. An identity unlocks by itself once the trailing window no
// longer holds threshold failures. Known limitation: an attacker can only be
// slowed down, not permanently blocked, but the mechanism needs no state and
// heals itself.
type ThrottleServiceImpl struct {
	attempts  domain.LoginAttemptRepository
	threshold int
	window    time.Duration
	log       *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewThrottleService creates a throttle controller over the attempt ledger.
func NewThrottleService(attempts domain.LoginAttemptRepository, threshold int, window time.Duration, log *zap.Logger, metrics *observability.Metrics) *ThrottleServiceImpl {
	return &ThrottleServiceImpl{
		attempts:  attempts,
		threshold: threshold,
		window:    window,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Locked implements domain.ThrottleService. A ledger read failure fails open:
// blocking a legitimate user on a storage fault is worse than letting one
// extra attempt through.
func (s *ThrottleServiceImpl) Locked(ctx context.Context, email string) bool {
	since := s.now().Add(-s.window)
	count, err := s.attempts.CountRecentFailures(ctx, domain.NormalizeEmail(email), since)
	if err != nil {
		s.log.Error("throttle: failure count unavailable, failing open", zap.Error(err))
		return false
	}
	locked := count >= int64(s.threshold)
	if locked {
		s.metrics.ThrottleRejections.Inc()
	}
	return locked
}
