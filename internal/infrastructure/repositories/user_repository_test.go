package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/superhecht1/praxida/domain"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&DBTenant{}, &DBUser{}, &DBLoginAttempt{}, &DBClientRecord{}))
	return db
}

func seedUser(t *testing.T, repo domain.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		TenantID:     1,
		Name:         "Ada Admin",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleAdministrator,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestUserRepository_FindByEmailIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seeded := seedUser(t, repo, "Admin@A.Test")

	found, err := repo.FindByEmail(context.Background(), "ADMIN@a.test")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "admin@a.test", found.Email, "the stored form is lowercased")
}

func TestUserRepository_FindByEmailNotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.FindByEmail(context.Background(), "ghost@a.test")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seedUser(t, repo, "admin@a.test")

	dup := &domain.User{TenantID: 2, Email: "ADMIN@A.TEST", Role: domain.RolePractitioner}
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seeded := seedUser(t, repo, "admin@a.test")

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Email, found.Email)
	assert.Equal(t, domain.RoleAdministrator, found.Role)

	_, err = repo.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seeded := seedUser(t, repo, "admin@a.test")

	require.NoError(t, repo.UpdatePassword(context.Background(), seeded.ID, "$2a$10$newhash"))

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newhash", found.PasswordHash)
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seeded := seedUser(t, repo, "admin@a.test")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(context.Background(), seeded.ID, at))

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, found.LastLoginAt.Equal(at))
}

func TestUserRepository_Deactivate(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seeded := seedUser(t, repo, "admin@a.test")

	require.NoError(t, repo.Deactivate(context.Background(), seeded.ID))

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
