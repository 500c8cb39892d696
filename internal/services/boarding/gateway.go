package boarding

import (
	"context"

	"github.com/aherrington/merchant-api/internal/domain"
)

// Outcome is the result of a single boarding attempt. Boarding is
// best-effort: a failed outcome is logged and counted but never
// propagated to the operation that triggered it.
type Outcome struct {
	Gateway   string
	Reference string // provider-side order or transaction reference, when available
	Err       error
	Retriable bool // transport failures qualify; payload and mapping failures do not
}

// Failed reports whether the attempt produced an error.
func (o Outcome) Failed() bool { return o.Err != nil }

// Succeeded builds a successful outcome.
func Succeeded(gateway, reference string) Outcome {
	return Outcome{Gateway: gateway, Reference: reference}
}

// Failure builds a failed outcome.
func Failure(gateway string, err error, retriable bool) Outcome {
	return Outcome{Gateway: gateway, Err: err, Retriable: retriable}
}

// MerchantBoarder submits a merchant to a provider's onboarding API.
type MerchantBoarder interface {
	BoardMerchant(ctx context.Context, merchant *domain.Merchant) Outcome
}

// PaymentBoarder submits a payment to a provider's transaction API.
type PaymentBoarder interface {
	BoardPayment(ctx context.Context, payment *domain.Payment) Outcome
}

// Gateway is the boarding contract a provider registration fulfils.
// Implementations must be safe for concurrent use and must respect the
// deadline on ctx; they report problems through the returned Outcome,
// never by panicking.
type Gateway interface {
	Name() string
	MerchantBoarder
	PaymentBoarder
}
