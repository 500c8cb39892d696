package auth

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aherrington/merchant-api/internal/domain"
)

const testSigningKey = "0e4ba6d9f2f1408d9d2b3b9a86c0a16e"

func newTestTokenStrategy(t *testing.T, store CredentialStore, ttl time.Duration) *TokenStrategy {
	t.Helper()
	return NewTokenStrategy(store, testSigningKey, "http://localhost", ttl, zaptest.NewLogger(t))
}

func TestTokenStrategy_IssueAndValidate(t *testing.T) {
	principal := domain.NewPrincipal("p1", "secret")
	strategy := newTestTokenStrategy(t, newFakeCredentialStore(principal), time.Hour)

	token, err := strategy.Issue(principal)
	require.NoError(t, err)
	assert.True(t, strategy.Validate(token, "p1"))
	assert.False(t, strategy.Validate(token, "p2"))
}

func TestTokenStrategy_ExpiryWithFrozenClock(t *testing.T) {
	principal := domain.NewPrincipal("p1", "secret")
	strategy := newTestTokenStrategy(t, newFakeCredentialStore(principal), time.Second)

	frozen := time.Date(2018, time.February, 22, 1, 51, 3, 0, time.UTC)
	strategy.WithClock(func() time.Time { return frozen })

	token, err := strategy.Issue(principal)
	require.NoError(t, err)

	// Valid immediately after issuance.
	assert.True(t, strategy.Validate(token, "p1"))

	// Advance the clock past the one second TTL; the signature is still
	// valid but the expiry check must reject it.
	strategy.WithClock(func() time.Time { return frozen.Add(2 * time.Second) })
	assert.False(t, strategy.Validate(token, "p1"))
}

func TestTokenStrategy_AuthenticateBearer(t *testing.T) {
	principal := domain.NewPrincipal("p1", "secret")
	store := newFakeCredentialStore(principal)
	strategy := newTestTokenStrategy(t, store, time.Hour)

	token, err := strategy.Issue(principal)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/v1/merchant", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	got := strategy.Authenticate(context.Background(), r)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.Name)
}

func TestTokenStrategy_MissingOrMalformedHeader(t *testing.T) {
	strategy := newTestTokenStrategy(t, newFakeCredentialStore(), time.Hour)

	for name, header := range map[string]string{
		"no header":      "",
		"wrong scheme":   "Basic cDE6c2VjcmV0",
		"no token":       "Bearer",
		"lowercase word": "bearer abc",
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/merchant", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			assert.Nil(t, strategy.Authenticate(context.Background(), r))
		})
	}
}

func TestTokenStrategy_TamperedToken(t *testing.T) {
	principal := domain.NewPrincipal("p1", "secret")
	store := newFakeCredentialStore(principal)
	strategy := newTestTokenStrategy(t, store, time.Hour)

	token, err := strategy.Issue(principal)
	require.NoError(t, err)

	// Corrupt the signature segment. Parsing must fail inside the
	// strategy, not escape as a panic or error.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	r := httptest.NewRequest("GET", "/v1/merchant", nil)
	r.Header.Set("Authorization", "Bearer "+tampered)
	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestTokenStrategy_UnknownSubjectPassThrough(t *testing.T) {
	issuerStrategy := newTestTokenStrategy(t, newFakeCredentialStore(), time.Hour)
	token, err := issuerStrategy.Issue(domain.NewPrincipal("ghost", "secret"))
	require.NoError(t, err)

	// Token parses fine but the subject no longer exists.
	store := newFakeCredentialStore(domain.NewPrincipal("p1", "secret"))
	strategy := newTestTokenStrategy(t, store, time.Hour)

	r := httptest.NewRequest("GET", "/v1/merchant", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestTokenStrategy_InactiveSubjectPassThrough(t *testing.T) {
	principal := domain.NewPrincipal("p1", "secret")
	store := newFakeCredentialStore(principal)
	strategy := newTestTokenStrategy(t, store, time.Hour)

	token, err := strategy.Issue(principal)
	require.NoError(t, err)

	// The account is deactivated after issuance; the still-valid token
	// must stop authenticating.
	principal.Active = false

	r := httptest.NewRequest("GET", "/v1/merchant", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestTokenStrategy_WrongKeyRejected(t *testing.T) {
	principal := domain.NewPrincipal("p1", "secret")
	other := NewTokenStrategy(newFakeCredentialStore(principal), "a-different-signing-key",
		"http://localhost", time.Hour, zaptest.NewLogger(t))
	token, err := other.Issue(principal)
	require.NoError(t, err)

	strategy := newTestTokenStrategy(t, newFakeCredentialStore(principal), time.Hour)
	assert.False(t, strategy.Validate(token, "p1"))
}
