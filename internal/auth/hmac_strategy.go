package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
)

// DefaultPrincipalHeader names the header carrying the caller's identity.
const DefaultPrincipalHeader = "user"

// HMACStrategy authenticates requests signed with the caller's shared
// secret. The signature covers method, request path, Date header, the
// principal header value and the Content-MD5 of the body, concatenated
// with no delimiters; the client and server must agree byte-for-byte.
// The query string is not part of the signature.
type HMACStrategy struct {
	store           CredentialStore
	principalHeader string
	logger          *zap.Logger
}

// NewHMACStrategy creates the signing-based authentication strategy.
// principalHeader may be empty, in which case DefaultPrincipalHeader is used.
func NewHMACStrategy(store CredentialStore, principalHeader string, logger *zap.Logger) *HMACStrategy {
	if principalHeader == "" {
		principalHeader = DefaultPrincipalHeader
	}
	return &HMACStrategy{
		store:           store,
		principalHeader: principalHeader,
		logger:          logger,
	}
}

// CanonicalRequestString builds the exact string the HMAC signature
// covers: method + path + date + principal + contentMD5. No delimiters,
// no normalization - the concatenation order is the protocol. The path
// is the encoded request path without the query string.
func CanonicalRequestString(method, path, date, principal, contentMD5 string) string {
	return method + path + date + principal + contentMD5
}

// Authenticate verifies the request signature. Missing headers, an
// unknown principal, a store failure, or a signature mismatch all result
// in a nil principal and an untouched request; none of them is an error
// at this layer.
func (s *HMACStrategy) Authenticate(ctx context.Context, r *http.Request) *domain.Principal {
	candidate := r.Header.Get("Authorization")
	date := r.Header.Get("Date")
	contentMD5 := r.Header.Get("Content-MD5")
	name := r.Header.Get(s.principalHeader)

	if candidate == "" || date == "" || contentMD5 == "" || name == "" {
		return nil
	}

	principal, found, err := s.store.FindSecretByPrincipal(ctx, name)
	if err != nil {
		s.logger.Warn("credential lookup failed during hmac authentication",
			zap.Error(err),
		)
		return nil
	}
	if !found || !principal.Active {
		return nil
	}

	canonical := CanonicalRequestString(r.Method, r.URL.EscapedPath(), date, name, contentMD5)
	if !Verify(principal.SecretKey, canonical, candidate, HmacSHA256) {
		s.logger.Debug("hmac signature mismatch",
			zap.String("method", r.Method),
			zap.String("path", r.URL.EscapedPath()),
		)
		return nil
	}

	return principal
}
