package domain

import "github.com/shopspring/decimal"

// PaymentType distinguishes the payment instruments a merchant accepts.
type PaymentType string

const (
	PaymentTypeCreditCard PaymentType = "CREDIT_CARD"
	PaymentTypeACH        PaymentType = "ACH"
)

// CreditCardType is the internal card-brand enumeration. Gateways map
// these to their own display strings; an unmapped brand aborts boarding.
type CreditCardType string

const (
	CardTypeVisa            CreditCardType = "VISA"
	CardTypeMastercard      CreditCardType = "MASTERCARD"
	CardTypeAmericanExpress CreditCardType = "AMERICAN_EXPRESS"
	CardTypeDiscover        CreditCardType = "DISCOVER"
	CardTypeJCB             CreditCardType = "JCB"
	CardTypeDinersClub      CreditCardType = "DINERS_CLUB"
)

// Payment is the slice of the payment entity the boarding subsystem needs:
// identity, the owning merchant (for gateway resolution), and the card
// details the provider payload carries.
type Payment struct {
	ID              string
	Merchant        *Merchant
	Type            PaymentType
	Amount          decimal.Decimal
	CardType        CreditCardType
	CardholderName  string
	CardNumber      string
	ExpirationMonth string // two digits, "02"
	ExpirationYear  string // four digits, "2026"
	CVV             string
}
