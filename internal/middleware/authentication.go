package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/auth"
)

// Authentication applies the configured strategy to every request. It
// never rejects: a request that fails authentication continues down the
// chain without a principal, and the authorization layer decides access.
func Authentication(strategy auth.Strategy, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !auth.IsAuthenticated(ctx) {
				if principal := strategy.Authenticate(ctx, r); principal != nil {
					ctx = auth.WithPrincipal(ctx, principal)
					logger.Debug("request authenticated",
						zap.String("principal", principal.Name),
						zap.String("path", r.URL.Path),
					)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
