package domain

// GatewayType identifies the payment provider a merchant boards through.
// Every merchant is bound to exactly one gateway type.
type GatewayType string

const (
	GatewayTypeBluepay GatewayType = "BLUEPAY"
	GatewayTypePayeezy GatewayType = "PAYEEZY"
)

// Merchant is the slice of the merchant entity the boarding subsystem
// borrows from the persistence layer: identity, the gateway binding, and
// the contact fields the marketplace boarding document carries.
type Merchant struct {
	ID          string
	GatewayType GatewayType
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	PostalCode  string
	Website     string
}

// Company returns the display name used on boarding orders.
func (m *Merchant) Company() string {
	if m.Website != "" {
		return m.Website
	}
	return m.FirstName + " " + m.LastName
}
