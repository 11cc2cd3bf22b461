package models

import "time"

// RefreshSession, refresh token allow-list'indeki tek bir kaydı temsil eder.
//
// Neden allow-list?
// Access token'lar self-contained'dır — tek tek iptal edilemezler.
// İptal granülerliği refresh token seviyesindedir: her refresh token'ın
// jti'si DB'de tutulur, logout/rotation anında revoked_at set edilir.
// İmzası geçerli ama jti'si listede olmayan (veya revoke edilmiş) bir
// refresh token reddedilir — çalınan token'lar böylece etkisizleşir.
//
// Kayıtlar fiziksel silinmez (soft revoke) — audit için rotation
// zinciri DB'de kalır. Süresi dolanlar periyodik GC ile temizlenebilir.
type RefreshSession struct {
	JTI       string     `json:"jti"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
}

// Valid, kaydın verilen anda geçerli olup olmadığını döner.
// Invariant: revoked_at unset VE now < expires_at.
func (s *RefreshSession) Valid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
