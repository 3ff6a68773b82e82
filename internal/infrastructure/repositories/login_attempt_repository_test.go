package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhecht1/praxida/domain"
)

func recordAttemptAt(t *testing.T, repo domain.LoginAttemptRepository, email string, success bool, at time.Time) {
	t.Helper()
	require.NoError(t, repo.Record(context.Background(), &domain.LoginAttempt{
		Email:     email,
		Success:   success,
		IPAddress: "203.0.113.7",
		CreatedAt: at,
	}))
}

func TestLoginAttemptRepository_CountRecentFailures(t *testing.T) {
	repo := NewLoginAttemptRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Three failures inside the window, one before it, one success inside it,
	// and a failure for someone else.
	recordAttemptAt(t, repo, "admin@a.test", false, base.Add(-20*time.Minute))
	recordAttemptAt(t, repo, "admin@a.test", false, base.Add(-10*time.Minute))
	recordAttemptAt(t, repo, "admin@a.test", false, base.Add(-5*time.Minute))
	recordAttemptAt(t, repo, "admin@a.test", false, base.Add(-1*time.Minute))
	recordAttemptAt(t, repo, "admin@a.test", true, base.Add(-3*time.Minute))
	recordAttemptAt(t, repo, "other@a.test", false, base.Add(-2*time.Minute))

	count, err := repo.CountRecentFailures(context.Background(), "admin@a.test", base.Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestLoginAttemptRepository_CountNormalizesEmail(t *testing.T) {
	repo := NewLoginAttemptRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	recordAttemptAt(t, repo, "Admin@A.Test", false, base.Add(-time.Minute))
	recordAttemptAt(t, repo, "ADMIN@a.test", false, base.Add(-time.Minute))

	count, err := repo.CountRecentFailures(context.Background(), "admin@A.TEST", base.Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLoginAttemptRepository_RecordDefaultsTimestamp(t *testing.T) {
	repo := NewLoginAttemptRepository(setupTestDB(t))

	attempt := &domain.LoginAttempt{Email: "admin@a.test", Success: false}
	require.NoError(t, repo.Record(context.Background(), attempt))
	assert.NotZero(t, attempt.ID)
	assert.False(t, attempt.CreatedAt.IsZero())
}

func TestLoginAttemptRepository_DeleteOlderThan(t *testing.T) {
	repo := NewLoginAttemptRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	recordAttemptAt(t, repo, "admin@a.test", false, base.Add(-100*24*time.Hour))
	recordAttemptAt(t, repo, "admin@a.test", true, base.Add(-95*24*time.Hour))
	recordAttemptAt(t, repo, "admin@a.test", false, base.Add(-time.Hour))

	deleted, err := repo.DeleteOlderThan(context.Background(), base.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// The recent row survives.
	count, err := repo.CountRecentFailures(context.Background(), "admin@a.test", base.Add(-2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
