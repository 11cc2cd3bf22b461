// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/pkg/ratelimit"
	"github.com/dmarchuk/salonio/services"
)

// Refresh cookie sabitleri.
//
// Path neden /api/auth?
// Cookie SADECE refresh/logout endpoint'lerine gider. Diğer API
// çağrılarında tarayıcı cookie'yi hiç göndermez — CSRF yüzeyi ve
// gereksiz trafik azalır.
const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/auth"
)

// AuthHandler, auth endpoint'lerini yöneten struct.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter

	// cookieSecure: config'ten gelir. TLS terminasyonu reverse
	// proxy'de yapılıyorsa r.TLS nil kalır — Secure flag'i bu
	// durumda config ile zorlanır.
	cookieSecure bool
}

// NewAuthHandler, constructor.
// loginLimiter: Login brute-force koruması. nil ise rate limiting devre dışı kalır.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
		cookieSecure: cookieSecure,
	}
}

// Login godoc
// POST /api/auth/login
//
// Başarılı yanıt: { token, expires_in, user } + HttpOnly refresh cookie.
// Refresh token response body'de ASLA dönmez — JavaScript erişemez,
// XSS ile çalınamaz.
//
// Rate limiting: IP bazlı brute-force koruması.
// Limit aşıldığında 429 Too Many Requests + Retry-After döner.
// Başarılı login sayacı sıfırlar — meşru kullanıcı bloke olmaz.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	h.setRefreshCookie(w, r, result.RefreshToken, result.RefreshExpiresAt)
	pkg.JSON(w, http.StatusOK, result)
}

// Refresh godoc
// POST /api/auth/refresh
//
// Refresh token body'den DEĞİL cookie'den okunur.
// - Cookie yok → 401 (kimlik sunulmadı)
// - Cookie var ama token geçersiz/iptal edilmiş → 403
//
// Her başarılı refresh'te token ROTATE edilir: eski jti iptal,
// yeni cookie set. Eski cookie'nin tekrar kullanımı 403 döner.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "refresh token cookie required")
		return
	}

	result, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		// Geçersiz token'da cookie de temizlenir — client'ın çürük
		// cookie ile tekrar tekrar denemesi anlamsız.
		h.clearRefreshCookie(w, r)
		pkg.Error(w, err)
		return
	}

	h.setRefreshCookie(w, r, result.RefreshToken, result.RefreshExpiresAt)
	pkg.JSON(w, http.StatusOK, result)
}

// Logout godoc
// POST /api/auth/logout
//
// Her zaman 204 döner — cookie yoksa, token bozuksa veya zaten iptal
// edildiyse de. Logout'un başarısız olabileceği bir durum yoktur.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	// Logout hiçbir durumda hata dönmez (bkz. AuthService.Logout).
	_ = h.authService.Logout(r.Context(), refreshToken)

	h.clearRefreshCookie(w, r)
	pkg.NoContent(w)
}

// Me godoc
// GET /api/auth/me
//
// Access token geçerli ama kullanıcı silinmişse 404 döner —
// client bunu oturumu kapatma sinyali olarak yorumlar.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.authService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// ChangePassword godoc
// POST /api/auth/change-password
// Body: { "current_password": "...", "new_password": "..." }
//
// Başarılı değişiklik tüm oturumları kapatır — cookie de temizlenir,
// kullanıcı yeni şifreyle tekrar login olur.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		pkg.Error(w, err)
		return
	}

	h.clearRefreshCookie(w, r)
	pkg.NoContent(w)
}

// ForgotPassword godoc
// POST /api/auth/forgot-password
// Body: { "email": "..." }
//
// Email kayıtlı olsun olmasın AYNI yanıt döner — hesap varlığı
// sızdırılmaz (user enumeration koruması).
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "if the email is registered, a reset link has been sent",
	})
}

// ResetPassword godoc
// POST /api/auth/reset-password
// Body: { "token": "...", "new_password": "..." }
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}

// setRefreshCookie, refresh token'ı HttpOnly cookie olarak yazar.
//
// Cookie özellikleri:
// - HttpOnly: JavaScript erişemez (XSS koruması)
// - SameSite=Strict: cross-site isteklerde gönderilmez (CSRF koruması)
// - Path=/api/auth: sadece auth endpoint'lerine gider
// - Secure: TLS'de veya config zorluyorsa
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, r *http.Request, refreshToken string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   h.cookieSecure || r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

// clearRefreshCookie, cookie'yi siler.
// Silme, set ile AYNI attribute'larla yapılmalı — Path farklıysa
// tarayıcı ayrı bir cookie olarak görür ve eskisi kalır.
func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   h.cookieSecure || r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
