package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg/email"
	"github.com/dmarchuk/salonio/pkg/token"
	"github.com/dmarchuk/salonio/repository"
	"github.com/dmarchuk/salonio/services"
)

// Taze bir kurulumda seed edilen admin hesabıyla varsayılan
// bilgilerle login olunabilmeli — ilk kurulum akışının tamamı:
// migration'lar + seed + auth service.
func TestSeedAdmin_DefaultAdminCanLogin(t *testing.T) {
	ctx := context.Background()

	db, err := database.New("file:seed_admin_test?mode=memory&cache=shared", database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, seedAdmin(ctx, db.Conn))

	// İkinci çağrı idempotent'tir — tablo boş değilse dokunmaz
	require.NoError(t, seedAdmin(ctx, db.Conn))

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	codec, err := token.NewCodec("test-secret", "", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	authSvc := services.NewAuthService(
		userRepo,
		repository.NewMemoryRefreshTokenRepo(),
		repository.NewSQLiteResetTokenRepo(db.Conn),
		codec,
		email.NewLogSender(),
	)

	res, err := authSvc.Login(ctx, &models.LoginRequest{
		Email:    "admin@salon.ru",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, models.RoleAdmin, res.User.Role)

	claims, err := authSvc.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
	assert.Equal(t, res.User.ID, claims.UserID)
}
