package handlers

import (
	"context"

	"github.com/dmarchuk/salonio/pkg/token"
)

// contextKey, context.WithValue için özel key tipi.
// String yerine ayrı tip kullanılır — başka paketlerin key'leriyle
// çakışma ihtimali kalmaz.
type contextKey string

// ClaimsContextKey, auth middleware'ın doğrulanmış token claims'ini
// context'e koyduğu key. Handler'lar ClaimsFromContext ile okur.
const ClaimsContextKey contextKey = "claims"

// ClaimsFromContext, context'ten doğrulanmış claims'i çıkarır.
// Middleware zincirinden geçmemiş bir istekte ok=false döner.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*token.Claims)
	return claims, ok
}
