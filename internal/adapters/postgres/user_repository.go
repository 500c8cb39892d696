package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
)

const uniqueViolation = "23505"

// UserRepository persists user accounts in Postgres. It doubles as the
// credential store the authentication strategies read from: lookups go
// straight to the database on every request so a revoked account takes
// effect immediately.
type UserRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewUserRepository creates a user repository over the given pool.
func NewUserRepository(pool *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{pool: pool, logger: logger}
}

// FindByName loads an account by its login name.
func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.Principal, error) {
	var principal domain.Principal
	err := r.pool.QueryRow(ctx,
		`SELECT email, secret_key, active FROM users WHERE email = $1`,
		name,
	).Scan(&principal.Name, &principal.SecretKey, &principal.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("user lookup failed", zap.String("user", name), zap.Error(err))
		return nil, domain.WrapError(domain.ErrorCodeDatabaseError, "find user", err)
	}

	principal.Authorities = []domain.Authority{domain.RoleUser}
	return &principal, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, principal *domain.Principal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (email, secret_key, active) VALUES ($1, $2, $3)`,
		principal.Name, principal.SecretKey, principal.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUserExists
		}
		r.logger.Error("user insert failed", zap.String("user", principal.Name), zap.Error(err))
		return domain.WrapError(domain.ErrorCodeDatabaseError, "create user", err)
	}
	return nil
}

// FindSecretByPrincipal implements the credential store contract used by
// the authentication strategies. A missing or deactivated account
// reports found=false with no error; only infrastructure failures
// surface as errors.
func (r *UserRepository) FindSecretByPrincipal(ctx context.Context, name string) (*domain.Principal, bool, error) {
	principal, err := r.FindByName(ctx, name)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrorCodeUserNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !principal.Active {
		return nil, false, nil
	}
	return principal, true, nil
}
