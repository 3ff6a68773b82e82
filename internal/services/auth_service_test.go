package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/mocks"
)

type authFixture struct {
	svc      *AuthServiceImpl
	users    *mocks.MockUserRepository
	tenants  *mocks.MockTenantRepository
	attempts *mocks.MockLoginAttemptRepository
	sessions *mocks.MockSessionService
	throttle *mocks.MockThrottleService
	password *mocks.MockPasswordService
	carrier  *mocks.MockCarrierService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    mocks.NewMockUserRepository(),
		tenants:  mocks.NewMockTenantRepository(),
		attempts: mocks.NewMockLoginAttemptRepository(),
		sessions: mocks.NewMockSessionService(),
		throttle: mocks.NewMockThrottleService(),
		password: mocks.NewMockPasswordService(),
		carrier:  mocks.NewMockCarrierService(),
	}
	f.svc = NewAuthService(
		f.users, f.tenants, f.attempts,
		f.sessions, f.throttle, f.password, f.carrier,
		10, 24*time.Hour, zap.NewNop(), newTestMetrics(),
	)
	return f
}

func knownUser() *domain.User {
	return &domain.User{
		ID:           1,
		TenantID:     1,
		Email:        "admin@a.test",
		PasswordHash: "hashed:Secret123!ABC",
		Role:         domain.RoleAdministrator,
		IsActive:     true,
	}
}

var testOrigin = domain.Origin{IPAddress: "203.0.113.7", UserAgent: "praxida-test"}

func TestAuthService_LoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	user := knownUser()
	f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		assert.Equal(t, "admin@a.test", email)
		return user, nil
	}

	result, err := f.svc.Login(context.Background(), "Admin@A.Test", "Secret123!ABC", testOrigin)
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "carrier:"+result.Session.ID, result.Token)
	assert.Equal(t, int64(24*3600), result.ExpiresIn)

	recorded := f.attempts.Recorded()
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].Success)
	assert.Equal(t, "admin@a.test", recorded[0].Email)
	assert.Equal(t, testOrigin.IPAddress, recorded[0].IPAddress)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *authFixture)
	}{
		{
			name:  "unknown email",
			setup: func(f *authFixture) {},
		},
		{
			name: "wrong password",
			setup: func(f *authFixture) {
				f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return knownUser(), nil
				}
			},
		},
		{
			name: "inactive account",
			setup: func(f *authFixture) {
				f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					u := knownUser()
					u.IsActive = false
					return u, nil
				}
			},
		},
		{
			name: "access-expired account",
			setup: func(f *authFixture) {
				f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					u := knownUser()
					past := time.Now().Add(-time.Hour)
					u.AccessExpiresAt = &past
					return u, nil
				}
			},
		},
		{
			name: "locked out",
			setup: func(f *authFixture) {
				f.throttle.LockedFunc = func(ctx context.Context, email string) bool { return true }
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			_, err := f.svc.Login(context.Background(), "admin@a.test", "definitely-wrong", testOrigin)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

			recorded := f.attempts.Recorded()
			require.Len(t, recorded, 1, "every failure must land in the ledger")
			assert.False(t, recorded[0].Success)
		})
	}
}

func TestAuthService_LoginBurnsHashingCostOnEveryRejection(t *testing.T) {
	// Unknown email and lockout paths never reach a real bcrypt comparison,
	// so they must burn an equivalent one.
	f := newAuthFixture(t)
	_, _ = f.svc.Login(context.Background(), "ghost@a.test", "pw", testOrigin)
	assert.Equal(t, 1, f.password.DummyVerifyCalls)

	f = newAuthFixture(t)
	f.throttle.LockedFunc = func(ctx context.Context, email string) bool { return true }
	_, _ = f.svc.Login(context.Background(), "admin@a.test", "pw", testOrigin)
	assert.Equal(t, 1, f.password.DummyVerifyCalls)
}

func TestAuthService_LockedOutRejectsCorrectPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return knownUser(), nil
	}
	f.throttle.LockedFunc = func(ctx context.Context, email string) bool { return true }

	issued := false
	f.sessions.IssueFunc = func(ctx context.Context, user *domain.User) (*domain.Session, error) {
		issued = true
		return nil, errors.New("must not be called")
	}

	_, err := f.svc.Login(context.Background(), "admin@a.test", "Secret123!ABC", testOrigin)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, issued, "a locked identity must never reach session issuance")
}

func TestAuthService_LockoutScenario(t *testing.T) {
	// Register, lock the account out with five failures, confirm the correct
	// password is still rejected, then slide past the window and log in.
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	attempts := mocks.NewMockLoginAttemptRepository()
	users := mocks.NewMockUserRepository()
	user := knownUser()
	users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}

	throttle := NewThrottleService(attempts, 5, 15*time.Minute, zap.NewNop(), newTestMetrics())
	throttle.now = clock

	f := &authFixture{
		users:    users,
		tenants:  mocks.NewMockTenantRepository(),
		attempts: attempts,
		sessions: mocks.NewMockSessionService(),
		password: mocks.NewMockPasswordService(),
		carrier:  mocks.NewMockCarrierService(),
	}
	svc := NewAuthService(
		users, f.tenants, attempts,
		f.sessions, throttle, f.password, f.carrier,
		10, 24*time.Hour, zap.NewNop(), newTestMetrics(),
	)
	svc.now = clock

	ctx := context.Background()

	// A clean login works.
	_, err := svc.Login(ctx, "admin@a.test", "Secret123!ABC", testOrigin)
	require.NoError(t, err)

	// Five wrong passwords, a minute apart.
	for i := 0; i < 5; i++ {
		current = current.Add(time.Minute)
		_, err := svc.Login(ctx, "admin@a.test", "wrong", testOrigin)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// The sixth attempt carries the correct password and is still rejected,
	// with the same error as a wrong password.
	current = current.Add(time.Minute)
	_, err = svc.Login(ctx, "admin@a.test", "Secret123!ABC", testOrigin)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// The rejection itself was recorded, so the window slid forward.
	var failures int
	for _, a := range attempts.Recorded() {
		if !a.Success {
			failures++
		}
	}
	assert.Equal(t, 6, failures)

	// Sixteen minutes after the last counted failure the window is clear.
	current = current.Add(16 * time.Minute)
	_, err = svc.Login(ctx, "admin@a.test", "Secret123!ABC", testOrigin)
	assert.NoError(t, err)
}

func TestAuthService_LedgerFailureDoesNotAbortLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return knownUser(), nil
	}
	f.attempts.RecordFunc = func(ctx context.Context, attempt *domain.LoginAttempt) error {
		return errors.New("disk full")
	}

	result, err := f.svc.Login(context.Background(), "admin@a.test", "Secret123!ABC", testOrigin)
	require.NoError(t, err, "a lost audit entry must not deny a legitimate login")
	assert.NotNil(t, result)
}

func TestAuthService_RegisterPractice(t *testing.T) {
	f := newAuthFixture(t)

	var createdTenant *domain.Tenant
	var createdAdmin *domain.User
	f.tenants.CreateWithAdminFunc = func(ctx context.Context, tenant *domain.Tenant, admin *domain.User) error {
		tenant.ID = 11
		admin.ID = 21
		admin.TenantID = tenant.ID
		createdTenant = tenant
		createdAdmin = admin
		return nil
	}

	result, err := f.svc.RegisterPractice(context.Background(), "Clinic A", "Ada Admin", "Admin@A.Test", "Secret123!ABC")
	require.NoError(t, err)
	assert.Equal(t, uint(11), result.TenantID)
	assert.Equal(t, uint(21), result.UserID)

	require.NotNil(t, createdTenant)
	assert.Equal(t, "clinic-a", createdTenant.Slug)
	assert.True(t, createdTenant.IsActive)

	require.NotNil(t, createdAdmin)
	assert.Equal(t, "admin@a.test", createdAdmin.Email, "email is stored lowercased")
	assert.Equal(t, domain.RoleAdministrator, createdAdmin.Role)
	assert.Equal(t, "hashed:Secret123!ABC", createdAdmin.PasswordHash)
}

func TestAuthService_RegisterPracticeValidation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RegisterPractice(context.Background(), "", "Ada", "a@a.test", "Secret123!ABC")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.RegisterPractice(context.Background(), "Clinic", "Ada", "a@a.test", "short")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_RegisterPracticeDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return knownUser(), nil
	}

	_, err := f.svc.RegisterPractice(context.Background(), "Clinic B", "Bo", "admin@a.test", "Secret123!ABC")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestAuthService_ChangePasswordRevokesOtherSessions(t *testing.T) {
	f := newAuthFixture(t)
	user := knownUser()
	f.users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) { return user, nil }

	var newHash string
	f.users.UpdatePasswordFunc = func(ctx context.Context, userID uint, passwordHash string) error {
		newHash = passwordHash
		return nil
	}

	var revokedUser uint
	var keptSession string
	f.sessions.RevokeAllExceptFunc = func(ctx context.Context, userID uint, keepSessionID string) error {
		revokedUser = userID
		keptSession = keepSessionID
		return nil
	}

	identity := &domain.AuthenticatedContext{UserID: 1, TenantID: 1, Role: domain.RoleAdministrator, SessionID: "s1"}
	err := f.svc.ChangePassword(context.Background(), identity, "Secret123!ABC", "NewSecret456!")
	require.NoError(t, err)

	assert.Equal(t, "hashed:NewSecret456!", newHash)
	assert.Equal(t, uint(1), revokedUser)
	assert.Equal(t, "s1", keptSession)
}

func TestAuthService_ChangePasswordRejectsWrongCurrent(t *testing.T) {
	f := newAuthFixture(t)
	f.users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) { return knownUser(), nil }

	revoked := false
	f.sessions.RevokeAllExceptFunc = func(ctx context.Context, userID uint, keepSessionID string) error {
		revoked = true
		return nil
	}

	identity := &domain.AuthenticatedContext{UserID: 1, SessionID: "s1"}
	err := f.svc.ChangePassword(context.Background(), identity, "wrong", "NewSecret456!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, revoked)
}

func TestAuthService_ChangePasswordValidatesLength(t *testing.T) {
	f := newAuthFixture(t)
	identity := &domain.AuthenticatedContext{UserID: 1, SessionID: "s1"}

	err := f.svc.ChangePassword(context.Background(), identity, "Secret123!ABC", "tiny")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	var revoked string
	f.sessions.RevokeFunc = func(ctx context.Context, sessionID string) error {
		revoked = sessionID
		return nil
	}

	require.NoError(t, f.svc.Logout(context.Background(), "s-42"))
	assert.Equal(t, "s-42", revoked)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Clinic A", "clinic-a"},
		{"Praxis Dr. Müller & Partner", "praxis-dr-m-ller-partner"},
		{"  spaced  out  ", "spaced-out"},
		{"already-slugged", "already-slugged"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in))
	}
}
