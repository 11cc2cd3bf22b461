package models

import "time"

// PasswordResetToken, şifre sıfırlama token'ının DB kaydı.
//
// Token plaintext olarak SAKLANMAZ — SHA256 hash'i saklanır (hex, 64
// karakter). Plaintext token kullanıcıya email ile gönderilir; doğrulama
// sırasında gelen token hash'lenip TokenHash ile karşılaştırılır.
// Bu sayede DB sızsa bile token'lar kullanılamaz.
type PasswordResetToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
