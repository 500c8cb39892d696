package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
)

// PaymentRepository reads the payment fields the boarding subsystem
// needs. Delete-triggered boarding runs after the row is gone from the
// caller's perspective, so the lookup happens before the delete is
// acknowledged.
type PaymentRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPaymentRepository creates a payment repository over the given pool.
func NewPaymentRepository(pool *pgxpool.Pool, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{pool: pool, logger: logger}
}

// FindByID loads a payment together with its owning merchant's gateway
// binding.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	var m domain.Merchant
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.type, p.amount, p.card_type, p.cardholder_name,
		        p.card_number, p.expiration_month, p.expiration_year, p.cvv,
		        m.id, m.gateway_type
		   FROM payments p
		   JOIN merchants m ON m.id = p.merchant_id
		  WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.Type, &p.Amount, &p.CardType, &p.CardholderName,
		&p.CardNumber, &p.ExpirationMonth, &p.ExpirationYear, &p.CVV,
		&m.ID, &m.GatewayType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewDomainError(domain.ErrorCodePaymentNotFound,
				"payment not found").WithDetail("payment_id", id)
		}
		r.logger.Error("payment lookup failed", zap.String("payment_id", id), zap.Error(err))
		return nil, domain.WrapError(domain.ErrorCodeDatabaseError, "find payment", err)
	}
	p.Merchant = &m
	return &p, nil
}
