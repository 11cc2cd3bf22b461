// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - Token üretimi ve rotasyonu
//   - Çakışma ve yetki kontrolleri
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/pkg/email"
	"github.com/dmarchuk/salonio/pkg/token"
	"github.com/dmarchuk/salonio/repository"
)

const (
	// resetTokenTTL, şifre sıfırlama linkinin geçerlilik süresi.
	resetTokenTTL = time.Hour

	// resetCooldown, iki sıfırlama isteği arasındaki minimum süre —
	// email flood koruması.
	resetCooldown = 90 * time.Second
)

// Auth hata taksonomisi. Hepsi pkg sentinel'larını sarar — handler
// katmanı pkg.Error ile doğru HTTP status'a çevirir.
var (
	// ErrInvalidCredentials: bilinmeyen email ve yanlış şifre AYNI
	// hatayı döner — farklı mesajlar hangi email'lerin kayıtlı
	// olduğunu sızdırır (user enumeration).
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)

	// ErrInvalidRefreshToken: imza bozuk, süre dolmuş veya malformed.
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", pkg.ErrForbidden)

	// ErrRevokedRefreshToken: imza geçerli ama jti allow-list'te yok —
	// rotate edilmiş token'ın replay'i de buraya düşer.
	ErrRevokedRefreshToken = fmt.Errorf("%w: refresh token revoked or unknown", pkg.ErrForbidden)
)

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)
	// Refresh, cookie'den gelen refresh token'ı doğrular, eski jti'yi
	// iptal eder ve yeni bir token çifti üretir (rotation).
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	// Logout, refresh token'ı iptal eder. Token geçersiz olsa bile
	// hata dönmez — logout her zaman başarılıdır.
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*token.Claims, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// ChangePassword, mevcut şifre doğrulandıktan sonra yeni şifreyi yazar
	// ve kullanıcının TÜM refresh token'larını iptal eder.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// ForgotPassword, email'e sıfırlama linki gönderir. Email kayıtlı
	// olmasa bile hata dönmez — hesap varlığı sızdırılmaz.
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// AuthResult, login/refresh sonrası dönen token çifti.
//
// RefreshToken JSON'a serialize EDİLMEZ — handler onu HttpOnly cookie
// olarak set eder, response body'de asla görünmez.
type AuthResult struct {
	AccessToken      string      `json:"token"`
	ExpiresIn        int64       `json:"expires_in"` // saniye cinsinden
	User             models.User `json:"user"`
	RefreshToken     string      `json:"-"`
	RefreshExpiresAt time.Time   `json:"-"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	resetRepo repository.PasswordResetRepository
	codec     *token.Codec
	mailer    email.EmailSender
}

// NewAuthService, constructor.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	resetRepo repository.PasswordResetRepository,
	codec *token.Codec,
	mailer email.EmailSender,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		resetRepo: resetRepo,
		codec:     codec,
		mailer:    mailer,
	}
}

// Login, email + şifre ile kimlik doğrulaması yapar.
//
// Email bulunamadı ve şifre yanlış durumları AYNI hatayı döner —
// farklı mesajlar hangi email'lerin kayıtlı olduğunu sızdırır
// (user enumeration).
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Kullanıcıyı bul
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. Şifre kontrolü
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 4. Token çifti üret
	return s.issueTokens(ctx, user)
}

// Refresh, refresh token rotation yapar.
//
// Akış:
// 1. İmza + süre doğrulaması (codec)
// 2. jti allow-list'ten atomik olarak claim edilir — revoke edilmiş
//    veya hiç eklenmemiş jti reddedilir. Çalınan eski token'ların
//    tekrar kullanımı (replay) burada yakalanır, aynı jti ile yarışan
//    iki istekten yalnızca biri kazanır.
// 3. Yeni çift üretilir.
//
// Eski jti, yeni token client'a dönmeden ÖNCE iptal edilir — claim
// kazanılamazsa yeni token da verilmez.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	// 1. İmza ve süre kontrolü
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// 2. Atomik claim: IsValid + Revoke ayrı adımlar olsaydı iki
	// eşzamanlı Refresh aynı jti ile ikisi de geçebilirdi.
	claimed, err := s.tokenRepo.Claim(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim refresh token: %w", err)
	}
	if !claimed {
		return nil, ErrRevokedRefreshToken
	}

	// 3. Kullanıcı hâlâ var mı? (silinen hesabın token'ı ölmeli)
	// jti bu noktada yakılmıştır — kullanıcı silinmişse token bir
	// daha denenemez, bu istenen davranıştır.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user no longer exists", pkg.ErrForbidden)
	}

	// 4. Yeni çift
	return s.issueTokens(ctx, user)
}

// Logout, refresh token'ın jti'sini iptal eder.
//
// Hiçbir durumda hata dönmez: token bozuksa, süresi geçmişse veya
// zaten iptal edilmişse de logout başarılı sayılır — client state'ini
// temizlemesine engel olunmaz.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID); err != nil {
		// Revoke idempotent'tir — buraya sadece DB hatası düşer.
		// Loglanır ama client'a yansıtılmaz.
		log.Printf("[auth] failed to revoke token on logout: %v", err)
	}

	return nil
}

// ValidateAccessToken, access token'ı doğrular ve claims'i döner.
// Middleware ve WS handler tarafından kullanılır — DB'ye GİTMEZ,
// sadece imza + süre kontrolü yapar (access token'lar stateless).
func (s *authService) ValidateAccessToken(tokenString string) (*token.Claims, error) {
	claims, err := s.codec.VerifyAccess(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", pkg.ErrForbidden)
	}
	return claims, nil
}

// GetUser, /api/auth/me için kullanıcı bilgisini döner.
func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ChangePassword, şifre değişikliği yapar ve tüm oturumları kapatır.
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", pkg.ErrBadRequest)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Şifre değişince tüm refresh token'lar ölür — çalınmış bir
	// oturum varsa burada kapanır. Mevcut access token'lar süreleri
	// dolana kadar (en fazla 15dk) çalışmaya devam eder.
	if err := s.tokenRepo.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

// ForgotPassword, sıfırlama token'ı üretir ve email gönderir.
//
// Token'ın kendisi DB'de SAKLANMAZ — SHA-256 hash'i saklanır.
// DB sızsa bile saldırgan ham token'ı elde edemez.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		// Email kayıtlı değil — yine de başarı döner (anti-enumeration).
		return nil
	}

	// Cooldown: son istekten itibaren 90sn geçmediyse yeni email
	// gönderilmez. Yanıt yine başarıdır — dışarıdan cooldown'a
	// takılmakla email'in kayıtlı olmaması ayırt edilemez.
	if last, err := s.resetRepo.GetLatestByUserID(ctx, user.ID); err == nil {
		if time.Since(last.CreatedAt) < resetCooldown {
			return nil
		}
	}

	// Eski sıfırlama token'ları temizlenir — aynı anda tek aktif link.
	if err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear old reset tokens: %w", err)
	}

	raw, hash, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	reset := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, raw); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword, sıfırlama token'ı ile yeni şifre yazar.
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", pkg.ErrBadRequest)
	}

	hash := hashResetToken(rawToken)
	reset, err := s.resetRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrBadRequest)
	}

	if time.Now().UTC().After(reset.ExpiresAt) {
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrBadRequest)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, string(newHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Token tek kullanımlık — başarılı resetten sonra silinir.
	if err := s.resetRepo.DeleteByID(ctx, reset.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	// Tüm oturumlar kapatılır — şifreyi saldırgan değil sahibi
	// sıfırladıysa yeniden login yeterli.
	if err := s.tokenRepo.RevokeAllByUser(ctx, reset.UserID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

// issueTokens, access + refresh çifti üretir ve jti'yi allow-list'e ekler.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	access, err := s.codec.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, jti, expiresAt, err := s.codec.IssueRefresh(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.tokenRepo.Add(ctx, jti, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:      access,
		ExpiresIn:        int64(s.codec.AccessTTL().Seconds()),
		User:             *user,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// generateResetToken, 32 byte'lık rastgele token üretir.
// İlk dönen değer kullanıcıya giden ham token, ikincisi DB'de
// saklanan SHA-256 hash'idir.
func generateResetToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
