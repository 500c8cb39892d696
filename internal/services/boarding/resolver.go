package boarding

import (
	"github.com/aherrington/merchant-api/internal/domain"
)

// Resolver maps a merchant's gateway type to the adapter that boards it.
// The map is built once at startup and copied, so lookups are safe for
// concurrent use without locking.
type Resolver struct {
	gateways map[domain.GatewayType]Gateway
}

// NewResolver builds a resolver over the given registrations.
func NewResolver(gateways map[domain.GatewayType]Gateway) *Resolver {
	m := make(map[domain.GatewayType]Gateway, len(gateways))
	for t, g := range gateways {
		m[t] = g
	}
	return &Resolver{gateways: m}
}

// Resolve returns the gateway registered for the given type. An unmapped
// type is a configuration defect surfaced as a typed error, not a panic.
func (r *Resolver) Resolve(gatewayType domain.GatewayType) (Gateway, error) {
	g, ok := r.gateways[gatewayType]
	if !ok {
		return nil, domain.NewDomainError(domain.ErrorCodeGatewayNotFound,
			"no gateway registered for merchant's gateway type").
			WithDetail("gateway_type", string(gatewayType))
	}
	return g, nil
}
