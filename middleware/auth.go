// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware Pattern nedir?
// Her HTTP request, handler'a ulaşmadan önce bir veya daha fazla middleware'dan geçer.
// Middleware'lar zincir şeklinde çalışır: Auth → Role → Handler
//
// Go'da middleware bir fonksiyondur:
//   func(next http.Handler) http.Handler
//
// "next" parametresi zincirdeki bir sonraki handler'dır.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Eğer hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmarchuk/salonio/handlers"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require, access token zorunlu kılan middleware.
//
// Status kodları ayrışır:
// - Header hiç yok / formatı bozuk → 401 (kimlik sunulmadı)
// - Token var ama geçersiz/süresi dolmuş → 403 (kimlik reddedildi)
//
// Client bu ayrıma göre davranır: 401/403 alınca refresh dener.
//
// Doğrulama STATELESS'tır — DB'ye gidilmez. Access token 15 dakikada
// ölür; kullanıcı silinmişse en geç 15 dakika içinde refresh
// başarısız olur ve oturum düşer.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Header'dan token'ı al
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		// 2. "Bearer " prefix'ini kaldır
		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 3. Token'ı doğrula — hata pkg.ErrForbidden sarar, 403 döner
		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// 4. Claims'i context'e ekle — downstream handler'lar
		// handlers.ClaimsFromContext ile erişir.
		ctx := context.WithValue(r.Context(), handlers.ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole, belirli bir role sahip olmayan istekleri reddeder.
// Require'dan SONRA zincire eklenmelidir — claims context'te hazır olmalı.
//
//	mux.Handle("POST /api/branches", auth.Require(auth.RequireRole(models.RoleAdmin)(handler)))
func (m *AuthMiddleware) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.ClaimsFromContext(r.Context())
			if !ok {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if claims.Role != string(role) {
				pkg.ErrorWithMessage(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
