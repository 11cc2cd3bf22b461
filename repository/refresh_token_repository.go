package repository

import (
	"context"
	"time"
)

// RefreshTokenRepository, refresh token allow-list'i için interface.
//
// İmza doğrulaması token codec'in işidir — bu katman SADECE "bu jti
// şu anda geçerli mi?" sorusuna cevap verir. Bir refresh token ancak
// hem imzası geçerliyse hem de jti'si burada geçerliyse kabul edilir.
//
// İki implementasyon aynı kontratı sağlar:
//   - sqliteRefreshTokenRepo: kalıcı, process restart'a dayanıklı
//   - memoryRefreshTokenRepo: process-local map, kalıcılığı olmayan
//     ortamlar için (config SESSION_STORE=memory)
type RefreshTokenRepository interface {
	// Add, yeni bir geçerli kayıt ekler.
	Add(ctx context.Context, jti, userID string, expiresAt time.Time) error

	// Revoke, kaydın revoked_at zamanını set eder. Idempotent'tir:
	// kayıt yoksa veya zaten revoke edilmişse error DÖNMEZ.
	// Revoke döndükten sonra aynı jti için tüm IsValid çağrıları
	// false döner — stale-read penceresi yoktur.
	Revoke(ctx context.Context, jti string) error

	// Claim, geçerli bir kaydı atomik olarak revoke eder ve iptali BU
	// çağrının yapıp yapmadığını döner. Rotation bunun üzerine kurulur:
	// aynı jti ile yarışan iki Refresh'ten yalnızca Claim'i kazanan
	// yeni token çifti alır, diğeri replay muamelesi görür. Kayıt yoksa,
	// zaten revoke edilmişse veya süresi dolmuşsa (false, nil).
	Claim(ctx context.Context, jti string) (bool, error)

	// IsValid, kayıt var + revoke edilmemiş + süresi dolmamış ise true.
	IsValid(ctx context.Context, jti string) (bool, error)

	// RevokeAllByUser, kullanıcının tüm aktif kayıtlarını revoke eder
	// (şifre değişikliği/sıfırlama sonrası tüm oturumları düşürmek için).
	RevokeAllByUser(ctx context.Context, userID string) error

	// DeleteExpired, süresi dolmuş kayıtları fiziksel olarak siler (GC).
	// Revoke edilmiş ama süresi dolmamış kayıtlara DOKUNMAZ.
	DeleteExpired(ctx context.Context) error
}
