package user

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aherrington/merchant-api/internal/auth"
	"github.com/aherrington/merchant-api/internal/domain"
)

// Repository persists user accounts. Implementations return
// USER_NOT_FOUND / USER_EXISTS domain errors so the service never has to
// inspect driver-level errors.
type Repository interface {
	FindByName(ctx context.Context, name string) (*domain.Principal, error)
	Create(ctx context.Context, principal *domain.Principal) error
}

// Service owns account registration and credential checks. The stored
// form of the secret depends on the security mode: under OAUTH the
// secret is bcrypt-hashed because only login ever compares it; under
// HMAC the server must recompute request signatures, so the shared
// secret is stored as issued.
type Service struct {
	repo   Repository
	tokens *auth.TokenStrategy // nil outside OAUTH mode
	mode   auth.StrategyType
	logger *zap.Logger
}

// NewService creates the user service. tokens may be nil when the
// security mode does not issue them.
func NewService(repo Repository, tokens *auth.TokenStrategy, mode auth.StrategyType, logger *zap.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, mode: mode, logger: logger}
}

// Register creates an account with a generated secret and returns the
// secret in the clear. This is the only time the caller can see it.
func (s *Service) Register(ctx context.Context, name string) (string, error) {
	secret := uuid.NewString()

	stored := secret
	if s.mode == auth.StrategyOAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return "", domain.WrapError(domain.ErrorCodeInternalError, "hash account secret", err)
		}
		stored = string(hash)
	}

	if err := s.repo.Create(ctx, domain.NewPrincipal(name, stored)); err != nil {
		return "", err
	}

	s.logger.Info("user registered", zap.String("user", name))
	return secret, nil
}

// ValidateCredentials checks a name/secret pair. Unknown name, inactive
// account, and wrong secret all come back as USER_NOT_FOUND so callers
// cannot probe which accounts exist.
func (s *Service) ValidateCredentials(ctx context.Context, name, secret string) (*domain.Principal, error) {
	principal, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !principal.Active {
		return nil, domain.ErrUserNotFound
	}

	if s.mode == auth.StrategyOAuth {
		if bcrypt.CompareHashAndPassword([]byte(principal.SecretKey), []byte(secret)) != nil {
			return nil, domain.ErrUserNotFound
		}
	} else if subtle.ConstantTimeCompare([]byte(principal.SecretKey), []byte(secret)) != 1 {
		return nil, domain.ErrUserNotFound
	}

	return principal, nil
}

// IssueToken mints a bearer token for an authenticated principal.
func (s *Service) IssueToken(principal *domain.Principal) (string, error) {
	if s.tokens == nil {
		return "", domain.NewDomainError(domain.ErrorCodeConfigInvalid,
			"token issuance requires OAUTH security mode")
	}
	return s.tokens.Issue(principal)
}

// Login validates credentials and issues a token in one step.
func (s *Service) Login(ctx context.Context, name, secret string) (string, error) {
	principal, err := s.ValidateCredentials(ctx, name, secret)
	if err != nil {
		return "", err
	}
	return s.IssueToken(principal)
}
