package boarding

import (
	"context"

	"github.com/aherrington/merchant-api/internal/domain"
)

// composite joins a merchant-onboarding adapter and a payment adapter
// into one gateway registration. Providers expose these as separate
// APIs; a merchant's gateway type selects both at once.
type composite struct {
	name      string
	merchants MerchantBoarder
	payments  PaymentBoarder
}

// Compose builds a gateway from per-concern adapters. A nil adapter
// means the provider has no API for that concern; the attempt is
// acknowledged locally as a success.
func Compose(name string, merchants MerchantBoarder, payments PaymentBoarder) Gateway {
	return &composite{name: name, merchants: merchants, payments: payments}
}

func (c *composite) Name() string { return c.name }

func (c *composite) BoardMerchant(ctx context.Context, merchant *domain.Merchant) Outcome {
	if c.merchants == nil {
		return Succeeded(c.name, "")
	}
	return c.merchants.BoardMerchant(ctx, merchant)
}

func (c *composite) BoardPayment(ctx context.Context, payment *domain.Payment) Outcome {
	if c.payments == nil {
		return Succeeded(c.name, "")
	}
	return c.payments.BoardPayment(ctx, payment)
}
