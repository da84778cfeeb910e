package context

import (
	"context"

	"bazar/internal/domain/service"
)

// keyClaims stores the authenticated principal's token claims.
const keyClaims ContextKey = "claims"

// WithClaims returns a new context carrying the validated token claims.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

// GetClaims extracts the authenticated principal's claims from the
// context. Returns nil when the request is unauthenticated.
func GetClaims(ctx context.Context) *service.Claims {
	if claims, ok := ctx.Value(keyClaims).(*service.Claims); ok {
		return claims
	}

	return nil
}
