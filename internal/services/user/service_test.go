package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/aherrington/merchant-api/internal/auth"
	"github.com/aherrington/merchant-api/internal/domain"
)

type fakeRepository struct {
	users map[string]*domain.Principal
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*domain.Principal)}
}

func (r *fakeRepository) FindByName(_ context.Context, name string) (*domain.Principal, error) {
	p, ok := r.users[name]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}

func (r *fakeRepository) Create(_ context.Context, principal *domain.Principal) error {
	if _, ok := r.users[principal.Name]; ok {
		return domain.ErrUserExists
	}
	r.users[principal.Name] = principal
	return nil
}

func oauthService(t *testing.T, repo Repository) *Service {
	t.Helper()
	tokens := auth.NewTokenStrategy(nil, "signing-key", "http://localhost", time.Hour, zaptest.NewLogger(t))
	return NewService(repo, tokens, auth.StrategyOAuth, zaptest.NewLogger(t))
}

func TestRegister_OAuthModeStoresHash(t *testing.T) {
	repo := newFakeRepository()
	svc := oauthService(t, repo)

	secret, err := svc.Register(context.Background(), "aherrington@bluepay.com")
	require.NoError(t, err)

	// The returned secret is a fresh UUID; only its hash is stored.
	_, err = uuid.Parse(secret)
	require.NoError(t, err)

	stored := repo.users["aherrington@bluepay.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, secret, stored.SecretKey)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.SecretKey), []byte(secret)))
	assert.True(t, stored.Active)
	assert.True(t, stored.HasAuthority(domain.RoleUser))
}

func TestRegister_HMACModeStoresSharedSecret(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, auth.StrategyHMAC, zaptest.NewLogger(t))

	secret, err := svc.Register(context.Background(), "aherrington@bluepay.com")
	require.NoError(t, err)

	// Signature verification recomputes the HMAC, so the server keeps the
	// shared secret as issued.
	assert.Equal(t, secret, repo.users["aherrington@bluepay.com"].SecretKey)
}

func TestRegister_DuplicateName(t *testing.T) {
	repo := newFakeRepository()
	svc := oauthService(t, repo)

	_, err := svc.Register(context.Background(), "dup@bluepay.com")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "dup@bluepay.com")
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeUserExists))
}

func TestValidateCredentials(t *testing.T) {
	repo := newFakeRepository()
	svc := oauthService(t, repo)
	secret, err := svc.Register(context.Background(), "user@bluepay.com")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		principal, err := svc.ValidateCredentials(context.Background(), "user@bluepay.com", secret)
		require.NoError(t, err)
		assert.Equal(t, "user@bluepay.com", principal.Name)
	})

	t.Run("wrong secret is indistinguishable from unknown user", func(t *testing.T) {
		_, wrongErr := svc.ValidateCredentials(context.Background(), "user@bluepay.com", "not-the-secret")
		_, unknownErr := svc.ValidateCredentials(context.Background(), "nobody@bluepay.com", secret)
		assert.True(t, domain.IsDomainError(wrongErr, domain.ErrorCodeUserNotFound))
		assert.True(t, domain.IsDomainError(unknownErr, domain.ErrorCodeUserNotFound))
	})

	t.Run("inactive account", func(t *testing.T) {
		repo.users["user@bluepay.com"].Active = false
		defer func() { repo.users["user@bluepay.com"].Active = true }()

		_, err := svc.ValidateCredentials(context.Background(), "user@bluepay.com", secret)
		assert.True(t, domain.IsDomainError(err, domain.ErrorCodeUserNotFound))
	})
}

func TestValidateCredentials_HMACMode(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, auth.StrategyHMAC, zaptest.NewLogger(t))
	secret, err := svc.Register(context.Background(), "user@bluepay.com")
	require.NoError(t, err)

	_, err = svc.ValidateCredentials(context.Background(), "user@bluepay.com", secret)
	assert.NoError(t, err)

	_, err = svc.ValidateCredentials(context.Background(), "user@bluepay.com", "wrong")
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeUserNotFound))
}

func TestLogin_IssuesValidToken(t *testing.T) {
	repo := newFakeRepository()
	tokens := auth.NewTokenStrategy(nil, "signing-key", "http://localhost", time.Hour, zaptest.NewLogger(t))
	svc := NewService(repo, tokens, auth.StrategyOAuth, zaptest.NewLogger(t))

	secret, err := svc.Register(context.Background(), "user@bluepay.com")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "user@bluepay.com", secret)
	require.NoError(t, err)
	assert.True(t, tokens.Validate(token, "user@bluepay.com"))
}

func TestIssueToken_RequiresOAuthMode(t *testing.T) {
	svc := NewService(newFakeRepository(), nil, auth.StrategyHMAC, zaptest.NewLogger(t))

	_, err := svc.IssueToken(domain.NewPrincipal("user@bluepay.com", "secret"))
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeConfigInvalid))
}
