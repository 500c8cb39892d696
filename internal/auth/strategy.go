package auth

import (
	"context"
	"net/http"

	"github.com/aherrington/merchant-api/internal/domain"
)

// CredentialStore looks up the shared secret for a principal. The second
// return reports whether the principal exists; strategies must treat "not
// found" identically to "verification failed" so callers cannot probe
// which principals exist.
type CredentialStore interface {
	FindSecretByPrincipal(ctx context.Context, name string) (*domain.Principal, bool, error)
}

// Strategy performs inbound request authentication. A nil principal means
// the request proceeds unauthenticated; strategies never reject a request
// themselves - the authorization layer decides access.
type Strategy interface {
	Authenticate(ctx context.Context, r *http.Request) *domain.Principal
}
