package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/salonio/models"
)

// İki implementasyon aynı kontratı sağlamalı — testler ikisine de
// aynı senaryolarla koşar. user1/user2, senaryoların kullanacağı
// geçerli user ID'leridir: sqlite'ta refresh_tokens.user_id foreign
// key taşıdığı için gerçek kayıtlar oluşturulur.
func forEachRefreshRepo(t *testing.T, fn func(t *testing.T, repo RefreshTokenRepository, user1, user2 string)) {
	t.Run("sqlite", func(t *testing.T) {
		db := testDB(t)
		users := NewSQLiteUserRepo(db)
		u1 := createTestUser(t, users, "u1@salon.ru", models.RoleMaster)
		u2 := createTestUser(t, users, "u2@salon.ru", models.RoleMaster)
		fn(t, NewSQLiteRefreshTokenRepo(db), u1.ID, u2.ID)
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryRefreshTokenRepo(), "user-1", "user-2")
	})
}

func TestRefreshTokenRepo_AddAndIsValid(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-1", user1, time.Now().Add(time.Hour)))

		valid, err := repo.IsValid(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, valid)
	})
}

func TestRefreshTokenRepo_UnknownJTIIsInvalid(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, _, _ string) {
		valid, err := repo.IsValid(context.Background(), "never-added")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestRefreshTokenRepo_RevokeInvalidates(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-1", user1, time.Now().Add(time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "jti-1"))

		valid, err := repo.IsValid(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestRefreshTokenRepo_RevokeIsIdempotent(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-1", user1, time.Now().Add(time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "jti-1"))
		require.NoError(t, repo.Revoke(ctx, "jti-1"))

		// Hiç eklenmemiş jti'yi revoke etmek de error değildir
		require.NoError(t, repo.Revoke(ctx, "never-added"))
	})
}

func TestRefreshTokenRepo_ClaimWinsExactlyOnce(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-1", user1, time.Now().Add(time.Hour)))

		claimed, err := repo.Claim(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, claimed)

		// İkinci claim kaybeder — jti artık revoke edilmiştir
		claimed, err = repo.Claim(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, claimed)

		valid, err := repo.IsValid(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestRefreshTokenRepo_ClaimRejectsUnknownAndExpired(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		claimed, err := repo.Claim(ctx, "never-added")
		require.NoError(t, err)
		assert.False(t, claimed)

		require.NoError(t, repo.Add(ctx, "jti-old", user1, time.Now().Add(-time.Minute)))
		claimed, err = repo.Claim(ctx, "jti-old")
		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestRefreshTokenRepo_ConcurrentClaimSingleWinner(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-1", user1, time.Now().Add(time.Hour)))

		const goroutines = 10
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		start := make(chan struct{})

		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				claimed, err := repo.Claim(ctx, "jti-1")
				assert.NoError(t, err)
				if claimed {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, 1, wins, "exactly one concurrent claim must win")
	})
}

func TestRefreshTokenRepo_ExpiredIsInvalid(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-old", user1, time.Now().Add(-time.Minute)))

		valid, err := repo.IsValid(ctx, "jti-old")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestRefreshTokenRepo_RevokeAllByUser(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, user2 string) {
		ctx := context.Background()
		exp := time.Now().Add(time.Hour)

		require.NoError(t, repo.Add(ctx, "jti-a", user1, exp))
		require.NoError(t, repo.Add(ctx, "jti-b", user1, exp))
		require.NoError(t, repo.Add(ctx, "jti-c", user2, exp))

		require.NoError(t, repo.RevokeAllByUser(ctx, user1))

		for _, jti := range []string{"jti-a", "jti-b"} {
			valid, err := repo.IsValid(ctx, jti)
			require.NoError(t, err)
			assert.False(t, valid, "jti %s should be revoked", jti)
		}

		// Başka kullanıcının oturumu etkilenmez
		valid, err := repo.IsValid(ctx, "jti-c")
		require.NoError(t, err)
		assert.True(t, valid)
	})
}

func TestRefreshTokenRepo_DeleteExpired(t *testing.T) {
	forEachRefreshRepo(t, func(t *testing.T, repo RefreshTokenRepository, user1, _ string) {
		ctx := context.Background()

		require.NoError(t, repo.Add(ctx, "jti-live", user1, time.Now().Add(time.Hour)))
		require.NoError(t, repo.Add(ctx, "jti-dead", user1, time.Now().Add(-time.Hour)))

		// Revoke edilmiş ama süresi dolmamış kayıt GC'den etkilenmez —
		// fiziksel silme sadece süresi dolmuşlar içindir.
		require.NoError(t, repo.Add(ctx, "jti-revoked", user1, time.Now().Add(time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "jti-revoked"))

		require.NoError(t, repo.DeleteExpired(ctx))

		valid, err := repo.IsValid(ctx, "jti-live")
		require.NoError(t, err)
		assert.True(t, valid)

		valid, err = repo.IsValid(ctx, "jti-dead")
		require.NoError(t, err)
		assert.False(t, valid)

		valid, err = repo.IsValid(ctx, "jti-revoked")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}
