package repository

import (
	"context"
	"sync"
	"time"

	"github.com/dmarchuk/salonio/models"
)

// memoryRefreshTokenRepo, RefreshTokenRepository'nin process-local
// implementasyonu. Kalıcı store'u olmayan ortamlar için (tek process,
// restart'ta oturumların düşmesi kabul edilebilir).
//
// Global değişken DEĞİLDİR — instance main.go'da oluşturulup
// AuthService'e inject edilir. Testler böylece izole instance kullanır.
//
// sync.RWMutex ile korunur: Revoke, Lock altında map'i günceller;
// Revoke döndükten sonra hiçbir IsValid eski değeri okuyamaz.
type memoryRefreshTokenRepo struct {
	mu       sync.RWMutex
	sessions map[string]*models.RefreshSession
}

// NewMemoryRefreshTokenRepo, constructor.
func NewMemoryRefreshTokenRepo() RefreshTokenRepository {
	return &memoryRefreshTokenRepo{
		sessions: make(map[string]*models.RefreshSession),
	}
}

func (r *memoryRefreshTokenRepo) Add(_ context.Context, jti, userID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[jti] = &models.RefreshSession{
		JTI:       jti,
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *memoryRefreshTokenRepo) Revoke(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Idempotent: kayıt yoksa veya zaten revoke edilmişse no-op.
	if s, ok := r.sessions[jti]; ok && s.RevokedAt == nil {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

func (r *memoryRefreshTokenRepo) Claim(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	s, ok := r.sessions[jti]
	if !ok || !s.Valid(now) {
		return false, nil
	}
	s.RevokedAt = &now
	return true, nil
}

func (r *memoryRefreshTokenRepo) IsValid(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[jti]
	if !ok {
		return false, nil
	}
	return s.Valid(time.Now()), nil
}

func (r *memoryRefreshTokenRepo) RevokeAllByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *memoryRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for jti, s := range r.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.sessions, jti)
		}
	}
	return nil
}
