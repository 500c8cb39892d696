package bluepay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/aherrington/merchant-api/internal/domain"
)

func TestGateway_AcknowledgesLocally(t *testing.T) {
	g := NewGateway(zaptest.NewLogger(t))
	assert.Equal(t, "bluepay", g.Name())

	merchant := &domain.Merchant{ID: "m1", GatewayType: domain.GatewayTypeBluepay}
	outcome := g.BoardMerchant(context.Background(), merchant)
	assert.False(t, outcome.Failed())
	assert.Equal(t, "m1", outcome.Reference)

	payment := &domain.Payment{ID: "p1", Merchant: merchant}
	outcome = g.BoardPayment(context.Background(), payment)
	assert.False(t, outcome.Failed())
	assert.Equal(t, "p1", outcome.Reference)
}
