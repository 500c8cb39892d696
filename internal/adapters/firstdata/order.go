package firstdata

import "github.com/aherrington/merchant-api/internal/domain"

// The marketplace wants a full product cart alongside the merchant
// contact details. Product identifiers, pricing bands, and cart totals
// come from a fixed catalog until catalog selection is exposed upstream;
// everything contact-related is taken from the merchant record.

type occurrence struct {
	Type string `json:"type"`
}

type productAttribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

type pricingDetail struct {
	ProductID         string            `json:"productId"`
	Quantity          int               `json:"quantity"`
	ProductName       string            `json:"productName"`
	Description       string            `json:"description,omitempty"`
	FeeMinAbsolute    float64           `json:"feeMinAbsolute"`
	FeeMin            float64           `json:"feeMin"`
	FeeDefault        float64           `json:"feeDefault"`
	FeeMax            float64           `json:"feeMax"`
	FeeMaxAbsolute    float64           `json:"feeMaxAbsolute"`
	MinAmountAbsolute float64           `json:"minAmountAbsolute"`
	MinAmt            float64           `json:"minAmt"`
	DefaultAmt        float64           `json:"defaultAmt"`
	MaxAmt            float64           `json:"maxAmt"`
	MaxAmountAbsolute float64           `json:"maxAmountAbsolute"`
	RateMinAbsolute   float64           `json:"rateMinAbsolute"`
	RateMin           float64           `json:"rateMin"`
	RateDefault       float64           `json:"rateDefault"`
	RateMax           float64           `json:"rateMax"`
	RateMaxAbsolute   float64           `json:"rateMaxAbsolute"`
	ProductType       string            `json:"productType"`
	IsOverride        bool              `json:"isOverride"`
	Override          bool              `json:"override"`
	ShowOnCart        bool              `json:"showoncart"`
	PurchaseType      string            `json:"purchaseType,omitempty"`
	Occurrence        occurrence        `json:"occurrence"`
	PaymentType       string            `json:"paymentType,omitempty"`
	Category          string            `json:"category,omitempty"`
	Disclosure        string            `json:"disclosure,omitempty"`
	ProductAttribute  *productAttribute `json:"productAttribute,omitempty"`
	GroupName         string            `json:"groupName,omitempty"`
	ParentOrder       int               `json:"parentOrder,omitempty"`
}

type transactionInfo struct {
	MCCTypes         string  `json:"mccTypes"`
	MCC              string  `json:"mcc"`
	AnnualVolume     float64 `json:"annualVolume"`
	CreditCardVolume float64 `json:"creditCardVolume"`
	AverageTicket    float64 `json:"averageTicket"`
	HighestTicket    float64 `json:"highestTicket"`
	Category         string  `json:"category"`
}

type pricingOptions struct {
	CompanyID       int             `json:"companyId"`
	TransactionInfo transactionInfo `json:"transactionInfo"`
}

type productToShip struct {
	ProductID string `json:"productId"`
	Term      string `json:"term"`
}

type shippingAddress struct {
	CompanyName    string          `json:"company_name"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Address1       string          `json:"address1"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	PostalCode     string          `json:"postalCode"`
	Email          string          `json:"email"`
	Email2         string          `json:"email2"`
	Phone          string          `json:"phone"`
	ProductsToShip []productToShip `json:"productstoShip"`
}

type cartItem struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Term        string  `json:"term,omitempty"`
	Qty         int     `json:"qty"`
	Category    string  `json:"category"`
	ProductType string  `json:"productType"`
}

type cartDetails struct {
	Data             []cartItem `json:"data"`
	Amount           float64    `json:"amount"`
	ShippingAmount   float64    `json:"shipping_amount"`
	Tax              float64    `json:"tax"`
	TaxPercent       float64    `json:"taxPercent"`
	Total            float64    `json:"total"`
	ShippingOptionID int        `json:"shipping_option_id"`
	PurchaseEnabled  bool       `json:"purchaseEnabled"`
	TotalQty         int        `json:"total_qty"`
}

type boardingOrder struct {
	Company           string            `json:"company"`
	NumberOfLocations int               `json:"numberofLocations"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Address1          string            `json:"address1"`
	City              string            `json:"city"`
	State             string            `json:"state"`
	PostalCode        string            `json:"postalCode"`
	RecordType        string            `json:"recordType"`
	CardNotPresent    int               `json:"cardNotPresent"`
	PricingDetails    []pricingDetail   `json:"pricingDetails"`
	PricingOptions    pricingOptions    `json:"pricingOptions"`
	ShippingAddress   []shippingAddress `json:"shippingAddress"`
	CartDetails       cartDetails       `json:"cartDetails"`
}

const stationProductID = "67702"

func catalogPricingDetails() []pricingDetail {
	return []pricingDetail{
		{
			ProductID:         stationProductID,
			Quantity:          1,
			ProductName:       "Clover Station W/ Cash Drawer",
			MinAmountAbsolute: 499.00,
			MinAmt:            999.00,
			DefaultAmt:        1599.00,
			MaxAmt:            1840.00,
			MaxAmountAbsolute: 1840.00,
			ProductType:       "IBUNDLE",
			PurchaseType:      "P",
			Occurrence:        occurrence{Type: "Onetime_Product"},
			PaymentType:       "P",
			Category:          "RETAIL",
		},
		{
			ProductID:   "59462",
			Quantity:    1,
			ProductName: "Transarmor Monthly Fee",
			Description: "4TA_TA_MOFEE",
			ProductType: "MO_FEE",
			ShowOnCart:  true,
			Occurrence:  occurrence{Type: "Recurring"},
			Disclosure:  "Per Location",
			ProductAttribute: &productAttribute{
				Name:   "SOLUTION_FEE",
				Value:  "Clover security Plus",
				Domain: "PRICING",
			},
		},
		{
			ProductID:         "3",
			Quantity:          1,
			ProductName:       "MasterCard Qualified Credit",
			Description:       "MC",
			DefaultAmt:        0.29,
			MaxAmt:            10,
			MaxAmountAbsolute: 10,
			RateDefault:       0.109,
			RateMax:           2.309,
			RateMaxAbsolute:   5,
			ProductType:       "NET_FEE",
			Occurrence:        occurrence{Type: "Transaction"},
			GroupName:         "Qualified Credit",
			ParentOrder:       1,
		},
	}
}

func catalogCartDetails() cartDetails {
	return cartDetails{
		Data: []cartItem{
			{ProductID: stationProductID, Name: "Clover Station W/ Cash Drawer", Price: 1599, Term: "P", Qty: 1, Category: "RETAIL", ProductType: "Terminal"},
			{ProductID: "50712", Name: "Gnd", Price: 19.95, Term: "P", Qty: 1, Category: "RETAIL", ProductType: "SHIPPING"},
			{ProductID: "10013", Name: "Visa/MasterCard", Qty: 1, Category: "RETAIL", ProductType: "ACQUIRING"},
			{ProductID: "10017", Name: "Discover", Qty: 1, Category: "RETAIL", ProductType: "ACQUIRING"},
			{ProductID: "10021", Name: "American Express", Qty: 1, Category: "RETAIL", ProductType: "ACQUIRING"},
			{ProductID: "10023", Name: "PayPal", Qty: 1, Category: "RETAIL", ProductType: "ACQUIRING"},
		},
		Amount:           1599.00,
		ShippingAmount:   19.95,
		Tax:              111.93,
		TaxPercent:       0.07,
		Total:            1730.88,
		ShippingOptionID: 1,
		PurchaseEnabled:  true,
		TotalQty:         1,
	}
}

// newBoardingOrder assembles the marketplace lead document for a merchant.
func newBoardingOrder(merchant *domain.Merchant) *boardingOrder {
	return &boardingOrder{
		Company:           merchant.Company(),
		NumberOfLocations: 1,
		FirstName:         merchant.FirstName,
		LastName:          merchant.LastName,
		Email:             merchant.Email,
		Phone:             merchant.Phone,
		Address1:          merchant.Address,
		City:              merchant.City,
		State:             merchant.State,
		PostalCode:        merchant.PostalCode,
		RecordType:        "Lead",
		CardNotPresent:    1,
		PricingDetails:    catalogPricingDetails(),
		PricingOptions: pricingOptions{
			CompanyID: 386,
			TransactionInfo: transactionInfo{
				MCCTypes:         "Appliances, Electronics, Computers",
				MCC:              "5734",
				AnnualVolume:     200000,
				CreditCardVolume: 150000,
				AverageTicket:    20,
				HighestTicket:    300,
				Category:         "RETAIL",
			},
		},
		ShippingAddress: []shippingAddress{
			{
				CompanyName:    merchant.Company(),
				FirstName:      merchant.FirstName,
				LastName:       merchant.LastName,
				Address1:       merchant.Address,
				City:           merchant.City,
				State:          merchant.State,
				PostalCode:     merchant.PostalCode,
				Email:          merchant.Email,
				Email2:         merchant.Email,
				Phone:          merchant.Phone,
				ProductsToShip: []productToShip{{ProductID: stationProductID, Term: "P"}},
			},
		},
		CartDetails: catalogCartDetails(),
	}
}
