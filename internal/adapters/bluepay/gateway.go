package bluepay

import (
	"context"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
	"github.com/aherrington/merchant-api/internal/services/boarding"
)

const gatewayName = "bluepay"

// Gateway is the registration for merchants processed in-house. There is
// no external API to call; boarding is acknowledged locally so the rest
// of the pipeline treats every gateway type uniformly.
type Gateway struct {
	logger *zap.Logger
}

// NewGateway creates the in-house gateway registration.
func NewGateway(logger *zap.Logger) *Gateway {
	return &Gateway{logger: logger}
}

func (g *Gateway) Name() string { return gatewayName }

func (g *Gateway) BoardMerchant(_ context.Context, merchant *domain.Merchant) boarding.Outcome {
	g.logger.Info("merchant boarded locally",
		zap.String("merchant_id", merchant.ID),
	)
	return boarding.Succeeded(gatewayName, merchant.ID)
}

func (g *Gateway) BoardPayment(_ context.Context, payment *domain.Payment) boarding.Outcome {
	g.logger.Info("payment boarded locally",
		zap.String("payment_id", payment.ID),
	)
	return boarding.Succeeded(gatewayName, payment.ID)
}
