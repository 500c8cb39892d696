package auth

import (
	"context"

	"github.com/aherrington/merchant-api/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the authenticated principal.
// The principal is set at most once per request: if the context already
// holds one, it is returned unchanged. Each request owns its own context,
// so concurrent requests cannot observe each other's principal.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	if p == nil || PrincipalFrom(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom extracts the authenticated principal, or nil if the
// request was not authenticated.
func PrincipalFrom(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(principalKey).(*domain.Principal)
	return p
}

// IsAuthenticated reports whether the context carries a principal.
func IsAuthenticated(ctx context.Context) bool {
	return PrincipalFrom(ctx) != nil
}
