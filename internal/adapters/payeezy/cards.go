package payeezy

import (
	"github.com/aherrington/merchant-api/internal/domain"
)

// cardDisplayNames maps the internal card-brand enumeration to the
// display strings the Payeezy transaction API accepts.
var cardDisplayNames = map[domain.CreditCardType]string{
	domain.CardTypeVisa:            "Visa",
	domain.CardTypeMastercard:      "Mastercard",
	domain.CardTypeAmericanExpress: "American Express",
	domain.CardTypeDiscover:        "Discover",
	domain.CardTypeJCB:             "JCB",
	domain.CardTypeDinersClub:      "Diners Club",
}

// cardDisplayName resolves the provider display string for a card brand.
// An unmapped brand is a typed error so the caller can abort before any
// network I/O happens.
func cardDisplayName(cardType domain.CreditCardType) (string, error) {
	name, ok := cardDisplayNames[cardType]
	if !ok {
		return "", domain.NewDomainError(domain.ErrorCodeCardMappingNotFound,
			"no card-brand mapping for gateway").
			WithDetail("card_type", string(cardType))
	}
	return name, nil
}
