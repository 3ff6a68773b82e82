package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/superhecht1/praxida/domain"
)

// MockLoginAttemptRepository implements domain.LoginAttemptRepository for
// testing. Without overrides it behaves as a working in-memory ledger, which
// makes throttle scenarios easy to script.
type MockLoginAttemptRepository struct {
	RecordFunc              func(ctx context.Context, attempt *domain.LoginAttempt) error
	CountRecentFailuresFunc func(ctx context.Context, email string, since time.Time) (int64, error)
	DeleteOlderThanFunc     func(ctx context.Context, cutoff time.Time) (int64, error)

	mu       sync.Mutex
	attempts []domain.LoginAttempt
}

// NewMockLoginAttemptRepository creates a new MockLoginAttemptRepository
func NewMockLoginAttemptRepository() *MockLoginAttemptRepository {
	return &MockLoginAttemptRepository{}
}

func (m *MockLoginAttemptRepository) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, attempt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	attempt.ID = uint(len(m.attempts) + 1)
	m.attempts = append(m.attempts, *attempt)
	return nil
}

func (m *MockLoginAttemptRepository) CountRecentFailures(ctx context.Context, email string, since time.Time) (int64, error) {
	if m.CountRecentFailuresFunc != nil {
		return m.CountRecentFailuresFunc(ctx, email, since)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, a := range m.attempts {
		if a.Email == email && !a.Success && a.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (m *MockLoginAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, cutoff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.attempts[:0]
	var deleted int64
	for _, a := range m.attempts {
		if a.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	m.attempts = kept
	return deleted, nil
}

// Recorded returns a copy of everything appended so far.
func (m *MockLoginAttemptRepository) Recorded() []domain.LoginAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.LoginAttempt, len(m.attempts))
	copy(out, m.attempts)
	return out
}
