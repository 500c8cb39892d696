package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/auth"
	"github.com/aherrington/merchant-api/internal/domain"
)

// RequireAuthenticated guards protected routes. Requests that reached
// this point without a principal receive 401; the authentication layer
// itself never produced that response.
func RequireAuthenticated(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.IsAuthenticated(r.Context()) {
				logger.Debug("unauthenticated request to protected route",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				writeError(w, http.StatusUnauthorized, domain.ErrAuthMissing)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthority additionally checks the principal's role.
func RequireAuthority(authority domain.Authority, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.PrincipalFrom(r.Context())
			if principal == nil {
				writeError(w, http.StatusUnauthorized, domain.ErrAuthMissing)
				return
			}
			if !principal.HasAuthority(authority) {
				logger.Warn("principal lacks required authority",
					zap.String("principal", principal.Name),
					zap.String("authority", string(authority)),
				)
				writeError(w, http.StatusForbidden, domain.ErrAuthAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, err *domain.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    string(err.Code),
		"message": err.Message,
	})
}
