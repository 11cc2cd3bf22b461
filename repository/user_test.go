package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteUserRepo(testDB(t))
	ctx := context.Background()

	user := createTestUser(t, repo, "olga@salon.ru", models.RoleReception)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "olga@salon.ru", byID.Email)
	assert.Equal(t, models.RoleReception, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "olga@salon.ru")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteUserRepo(testDB(t))

	createTestUser(t, repo, "olga@salon.ru", models.RoleReception)

	dup := &models.User{
		Email:        "olga@salon.ru",
		Name:         "Другая Ольга",
		Role:         models.RoleMaster,
		PasswordHash: "hash",
	}
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestUserRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteUserRepo(testDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@salon.ru")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	repo := NewSQLiteUserRepo(testDB(t))
	ctx := context.Background()

	user := createTestUser(t, repo, "olga@salon.ru", models.RoleAdmin)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	err = repo.UpdatePassword(ctx, "no-such-id", "hash")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserRepo_Count(t *testing.T) {
	repo := NewSQLiteUserRepo(testDB(t))
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	createTestUser(t, repo, "a@salon.ru", models.RoleAdmin)
	createTestUser(t, repo, "b@salon.ru", models.RoleMaster)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
