package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/config"
	"github.com/aherrington/merchant-api/internal/domain"
	"github.com/aherrington/merchant-api/internal/services/boarding"
	"github.com/aherrington/merchant-api/internal/services/user"
)

// merchantStore is the merchant lookup the handlers need.
type merchantStore interface {
	FindByID(ctx context.Context, id string) (*domain.Merchant, error)
}

// paymentStore is the payment lookup the delete hook needs.
type paymentStore interface {
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
}

// api carries the handler dependencies. Boarding is triggered after the
// response is written; a gateway outage never fails the API call.
type api struct {
	users      *user.Service
	merchants  merchantStore
	payments   paymentStore
	dispatcher *boarding.Dispatcher
	boarding   config.BoardingConfig
	logger     *zap.Logger
}

func newAPI(users *user.Service, merchants merchantStore, payments paymentStore, dispatcher *boarding.Dispatcher, boardingCfg config.BoardingConfig, logger *zap.Logger) *api {
	return &api{users: users, merchants: merchants, payments: payments, dispatcher: dispatcher, boarding: boardingCfg, logger: logger}
}

type registerRequest struct {
	Email string `json:"email"`
}

func (a *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "email is required")
		return
	}

	secret, err := a.users.Register(r.Context(), req.Email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrorCodeUserExists) {
			writeErrorResponse(w, http.StatusConflict, string(domain.ErrorCodeUserExists), "user already exists")
			return
		}
		a.logger.Error("registration failed", zap.String("user", req.Email), zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, string(domain.ErrorCodeInternalError), "registration failed")
		return
	}

	// The secret is returned exactly once and never stored recoverably
	// under OAUTH mode.
	writeJSON(w, http.StatusCreated, map[string]string{
		"email":  req.Email,
		"secret": secret,
	})
}

type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "email and secret are required")
		return
	}

	token, err := a.users.Login(r.Context(), req.Email, req.Secret)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrorCodeUserNotFound) {
			writeErrorResponse(w, http.StatusUnauthorized, string(domain.ErrorCodeAuthMissing), "invalid credentials")
			return
		}
		a.logger.Error("login failed", zap.String("user", req.Email), zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, string(domain.ErrorCodeInternalError), "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type merchantRequest struct {
	ID          string `json:"id"`
	GatewayType string `json:"gateway_type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Website     string `json:"website"`
}

func (a *api) handleSaveMerchant(w http.ResponseWriter, r *http.Request) {
	var req merchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || req.GatewayType == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "id and gateway_type are required")
		return
	}

	merchant := &domain.Merchant{
		ID:          req.ID,
		GatewayType: domain.GatewayType(req.GatewayType),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Website:     req.Website,
	}

	if a.boarding.BoardMerchantsOnSave {
		a.dispatcher.BoardMerchant(merchant)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": merchant.ID})
}

type paymentRequest struct {
	ID              string          `json:"id"`
	Merchant        merchantRequest `json:"merchant"`
	Type            string          `json:"type"`
	Amount          string          `json:"amount"`
	CardType        string          `json:"card_type"`
	CardholderName  string          `json:"cardholder_name"`
	CardNumber      string          `json:"card_number"`
	ExpirationMonth string          `json:"expiration_month"`
	ExpirationYear  string          `json:"expiration_year"`
	CVV             string          `json:"cvv"`
}

func (a *api) handleSavePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || req.Merchant.ID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "id and merchant are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "amount must be a decimal string")
		return
	}

	// Callers may omit the gateway binding; it is authoritative in the
	// merchant record, not the request.
	merchant := &domain.Merchant{
		ID:          req.Merchant.ID,
		GatewayType: domain.GatewayType(req.Merchant.GatewayType),
	}
	if merchant.GatewayType == "" {
		stored, err := a.merchants.FindByID(r.Context(), req.Merchant.ID)
		if err != nil {
			if domain.IsDomainError(err, domain.ErrorCodeMerchantNotFound) {
				writeErrorResponse(w, http.StatusBadRequest, string(domain.ErrorCodeMerchantNotFound), "unknown merchant")
				return
			}
			a.logger.Error("merchant lookup failed", zap.String("merchant_id", req.Merchant.ID), zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, string(domain.ErrorCodeInternalError), "payment save failed")
			return
		}
		merchant = stored
	}

	payment := &domain.Payment{
		ID:              req.ID,
		Merchant:        merchant,
		Type:            domain.PaymentType(req.Type),
		Amount:          amount,
		CardType:        domain.CreditCardType(req.CardType),
		CardholderName:  req.CardholderName,
		CardNumber:      req.CardNumber,
		ExpirationMonth: req.ExpirationMonth,
		ExpirationYear:  req.ExpirationYear,
		CVV:             req.CVV,
	}

	if a.boarding.BoardPaymentsOnSave {
		a.dispatcher.BoardPayment(payment)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": payment.ID})
}

// handleDeletePayment re-boards a payment when it is removed. The
// gateway needs to see the deletion; the dispatcher routes it behind
// any in-flight save for the same payment ID.
func (a *api) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "payment id is required")
		return
	}

	payment, err := a.payments.FindByID(r.Context(), id)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrorCodePaymentNotFound) {
			writeErrorResponse(w, http.StatusNotFound, string(domain.ErrorCodePaymentNotFound), "unknown payment")
			return
		}
		a.logger.Error("payment lookup failed", zap.String("payment_id", id), zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, string(domain.ErrorCodeInternalError), "payment delete failed")
		return
	}

	if a.boarding.BoardPaymentsOnSave {
		a.dispatcher.BoardPayment(payment)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
