package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
)

// MerchantRepository reads the merchant fields the boarding subsystem
// needs: the gateway binding and the contact block that goes on
// marketplace boarding orders.
type MerchantRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewMerchantRepository creates a merchant repository over the given pool.
func NewMerchantRepository(pool *pgxpool.Pool, logger *zap.Logger) *MerchantRepository {
	return &MerchantRepository{pool: pool, logger: logger}
}

// FindByID loads a merchant.
func (r *MerchantRepository) FindByID(ctx context.Context, id string) (*domain.Merchant, error) {
	var m domain.Merchant
	err := r.pool.QueryRow(ctx,
		`SELECT id, gateway_type, first_name, last_name, email, phone,
		        address, city, state, postal_code, website
		   FROM merchants WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.GatewayType, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
		&m.Address, &m.City, &m.State, &m.PostalCode, &m.Website)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewDomainError(domain.ErrorCodeMerchantNotFound,
				"merchant not found").WithDetail("merchant_id", id)
		}
		r.logger.Error("merchant lookup failed", zap.String("merchant_id", id), zap.Error(err))
		return nil, domain.WrapError(domain.ErrorCodeDatabaseError, "find merchant", err)
	}
	return &m, nil
}
