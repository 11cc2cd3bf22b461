package repository

import (
	"context"

	"github.com/dmarchuk/salonio/models"
)

// PasswordResetRepository, şifre sıfırlama token'ları için interface.
type PasswordResetRepository interface {
	// Create, yeni bir reset token kaydı oluşturur.
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// GetByTokenHash, SHA256 hash'e göre kaydı bulur.
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)

	// DeleteByID, tek bir kaydı siler (başarılı reset sonrası).
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUserID, kullanıcının TÜM reset token'larını siler —
	// yeni token oluşturmadan önce eskiler temizlenir.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired, süresi dolmuş token'ları temizler. Her reset
	// isteğinde fırsat temizliği olarak çağrılır, cron gerekmez.
	DeleteExpired(ctx context.Context) error

	// GetLatestByUserID, kullanıcının en son token'ını döner —
	// cooldown kontrolü created_at üzerinden yapılır.
	GetLatestByUserID(ctx context.Context, userID string) (*models.PasswordResetToken, error)
}
