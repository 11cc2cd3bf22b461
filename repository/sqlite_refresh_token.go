package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarchuk/salonio/database"
)

// sqliteRefreshTokenRepo, RefreshTokenRepository'nin kalıcı implementasyonu.
//
// Revoke bir UPDATE'tir ve SQLite'ta autocommit ile hemen commit edilir —
// Revoke döndüğünde yazma diske inmiştir, sonraki IsValid sorguları
// kesin olarak false görür. Rotation response'u client'a dönmeden önce
// eski jti'nin iptali bu sayede garanti edilir.
type sqliteRefreshTokenRepo struct {
	db database.TxQuerier
}

// NewSQLiteRefreshTokenRepo, constructor.
func NewSQLiteRefreshTokenRepo(db database.TxQuerier) RefreshTokenRepository {
	return &sqliteRefreshTokenRepo{db: db}
}

func (r *sqliteRefreshTokenRepo) Add(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (jti, user_id, expires_at)
		VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, jti, userID, expiresAt.UTC()); err != nil {
		return fmt.Errorf("failed to add refresh token: %w", err)
	}
	return nil
}

func (r *sqliteRefreshTokenRepo) Revoke(ctx context.Context, jti string) error {
	// Idempotent: kayıt yoksa 0 satır etkilenir, bu bir hata DEĞİLDİR.
	// Zaten revoke edilmiş kaydın revoked_at'i korunur (ilk iptal zamanı).
	query := `
		UPDATE refresh_tokens SET revoked_at = CURRENT_TIMESTAMP
		WHERE jti = ? AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *sqliteRefreshTokenRepo) Claim(ctx context.Context, jti string) (bool, error) {
	// Tek UPDATE ile check-and-revoke: WHERE koşulu geçerliliği sınar,
	// RowsAffected iptali kimin yaptığını söyler. Aynı jti ile yarışan
	// iki çağrıdan yalnızca biri 1 satır etkiler.
	query := `
		UPDATE refresh_tokens SET revoked_at = CURRENT_TIMESTAMP
		WHERE jti = ? AND revoked_at IS NULL AND expires_at > ?`

	res, err := r.db.ExecContext(ctx, query, jti, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to claim refresh token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to claim refresh token: %w", err)
	}
	return affected == 1, nil
}

func (r *sqliteRefreshTokenRepo) IsValid(ctx context.Context, jti string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM refresh_tokens
		WHERE jti = ? AND revoked_at IS NULL AND expires_at > ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, jti, time.Now().UTC()).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return count > 0, nil
}

func (r *sqliteRefreshTokenRepo) RevokeAllByUser(ctx context.Context, userID string) error {
	query := `
		UPDATE refresh_tokens SET revoked_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}
	return nil
}

func (r *sqliteRefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return nil
}
