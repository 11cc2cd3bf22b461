// Package token — JWT access/refresh token üretimi ve doğrulaması.
//
// Neden ayrı paket?
// Token imzalama hem AuthService hem middleware hem de testler tarafından
// kullanılır. pkg altında leaf dependency olarak konumlandırıldı —
// hiçbir proje içi pakete bağımlı değildir, import cycle riski yoktur.
//
// İki tür token üretilir:
//   - Access token: kısa ömürlü (varsayılan 15dk), self-contained.
//     Server tarafında SAKLANMAZ — doğrulama sadece imza + süre kontrolüdür.
//   - Refresh token: uzun ömürlü (varsayılan 7 gün), benzersiz bir jti
//     (JWT ID) taşır. İmza tek başına yeterli DEĞİLDİR — jti'nin
//     allow-list'te geçerli olması da gerekir (repository katmanı).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken, imzası bozuk, süresi dolmuş veya malformed token'lar
// için döner. Çağıran taraf sebepleri ayırt edemez — saldırgana token'ın
// neden reddedildiği söylenmez.
var ErrInvalidToken = errors.New("invalid token")

// Claims, token payload'ında taşınan kimlik bilgisi.
// Refresh token'larda RegisteredClaims.ID alanı jti olarak doldurulur.
//
// Claims issue anında sabitlenir — token ömrü boyunca güncellenmez.
// Rol değişikliği ancak yeni login/rotation ile token'a yansır.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec, token üretim/doğrulama işlemlerini yapan yapı.
// Construct edildikten sonra immutable — goroutine-safe.
//
// Access ve refresh token'lar için ayrı secret yapılandırılabilir,
// böylece iki anahtar birbirinden bağımsız rotate edilebilir.
// Refresh secret verilmezse access secret kullanılır.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec, yeni bir Codec oluşturur.
//
// accessSecret boşsa error döner — imzasız token üretimi diye bir şey
// yoktur, auth sessizce "doğrulamasız" moda düşemez. main.go bu
// error'da fatal olur.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if accessSecret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}

	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL, access token ömrünü döner.
// Handler katmanı expires_in alanını bundan hesaplar.
func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// RefreshTTL, refresh token ömrünü döner.
// Cookie MaxAge bundan hesaplanır.
func (c *Codec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// IssueAccess, verilen kimlik için imzalı access token üretir.
// Yan etkisi yoktur — DB'ye hiçbir şey yazılmaz.
func (c *Codec) IssueAccess(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "salonio",
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefresh, yeni bir jti üretip imzalı refresh token döner.
// Dönen jti değerinin allow-list'e yazılması ÇAĞIRANIN sorumluluğudur
// (AuthService) — codec store'u bilmez.
func (c *Codec) IssueRefresh(userID, email, role string) (signed string, jti string, expiresAt time.Time, err error) {
	now := time.Now()
	jti = uuid.NewString()
	expiresAt = now.Add(c.refreshTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "salonio",
		},
	}

	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, jti, expiresAt, nil
}

// VerifyAccess, access token'ı doğrular ve claims döner.
// İmza geçersiz, süre dolmuş veya token malformed ise ErrInvalidToken.
func (c *Codec) VerifyAccess(tokenString string) (*Claims, error) {
	return c.verify(tokenString, c.accessSecret)
}

// VerifyRefresh, refresh token'ı doğrular ve claims döner.
// Dönen claims'in ID alanı jti'dir — çağıran allow-list kontrolünü
// ayrıca yapmalıdır. Buradaki doğrulama SADECE kriptografiktir.
func (c *Codec) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := c.verify(tokenString, c.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		// jti'siz refresh token üretilmez — eski/yabancı bir token
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// verify, ortak doğrulama yolu. Doğrulama CPU-bound'dur ve senkron
// çalışır — callback/async bir yapıya gerek yoktur.
func (c *Codec) verify(tokenString string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		// Algorithm confusion koruması: sadece HMAC kabul edilir.
		// "alg: none" veya RS256 ile imzalanmış token'lar reddedilir.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
