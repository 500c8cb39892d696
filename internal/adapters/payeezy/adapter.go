package payeezy

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/adapters/ports"
	"github.com/aherrington/merchant-api/internal/domain"
	"github.com/aherrington/merchant-api/internal/services/boarding"
)

const gatewayName = "payeezy"

// Config contains Payeezy transaction API settings. The API secret lives
// in the secret manager; everything else is plain configuration.
type Config struct {
	URL        string
	APIKey     string
	Token      string
	SecretPath string
}

// Adapter boards credit-card payments as Payeezy purchase transactions.
// Every request is signed over apiKey + nonce + timestamp + token +
// payload; the digest is hex-encoded and then base64-encoded, which is
// what the provider verifies against.
type Adapter struct {
	config     Config
	httpClient ports.HTTPClient
	secrets    ports.SecretManagerAdapter
	logger     *zap.Logger
	now        func() time.Time
	nonce      func() string
}

// NewAdapter creates a Payeezy payment adapter.
func NewAdapter(config Config, httpClient ports.HTTPClient, secrets ports.SecretManagerAdapter, logger *zap.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: httpClient,
		secrets:    secrets,
		logger:     logger,
		now:        time.Now,
		nonce:      randomNonce,
	}
}

// WithClock overrides the adapter's clock. Test hook.
func (a *Adapter) WithClock(now func() time.Time) *Adapter {
	a.now = now
	return a
}

// WithNonce overrides the nonce source. Test hook.
func (a *Adapter) WithNonce(nonce func() string) *Adapter {
	a.nonce = nonce
	return a
}

func randomNonce() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the process is in far worse trouble
		// than a weak nonce; fall back to the clock.
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 10)
}

type creditCard struct {
	Type           string `json:"type"`
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpDate        string `json:"exp_date"`
	CVV            string `json:"cvv"`
}

type purchaseRequest struct {
	TransactionType string     `json:"transaction_type"`
	Method          string     `json:"method"`
	Amount          string     `json:"amount"`
	CurrencyCode    string     `json:"currency_code"`
	CreditCard      creditCard `json:"credit_card"`
}

// buildPayload renders the purchase document for a credit-card payment.
// Amount goes over the wire in minor units; expiry as MMYY.
func buildPayload(payment *domain.Payment) ([]byte, error) {
	if payment.Type != domain.PaymentTypeCreditCard {
		return nil, domain.NewDomainError(domain.ErrorCodeBoardingPayload,
			"gateway only boards credit-card payments").
			WithDetail("payment_type", string(payment.Type))
	}

	cardName, err := cardDisplayName(payment.CardType)
	if err != nil {
		return nil, err
	}

	expYear := payment.ExpirationYear
	if len(expYear) == 4 {
		expYear = expYear[2:]
	}

	return json.Marshal(purchaseRequest{
		TransactionType: "purchase",
		Method:          "credit_card",
		Amount:          strings.Replace(payment.Amount.StringFixed(2), ".", "", 1),
		CurrencyCode:    "USD",
		CreditCard: creditCard{
			Type:           cardName,
			CardholderName: payment.CardholderName,
			CardNumber:     payment.CardNumber,
			ExpDate:        payment.ExpirationMonth + expYear,
			CVV:            payment.CVV,
		},
	})
}

// signRequest computes the Authorization value: HMAC-SHA256 over
// apiKey + nonce + timestamp + token + payload, hex-encoded, then
// base64-encoded. The double encoding is part of the provider contract.
func signRequest(apiKey, apiSecret, token, nonce, timestamp string, payload []byte) string {
	var canonical bytes.Buffer
	canonical.WriteString(apiKey)
	canonical.WriteString(nonce)
	canonical.WriteString(timestamp)
	canonical.WriteString(token)
	canonical.Write(payload)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write(canonical.Bytes())
	digest := hex.EncodeToString(mac.Sum(nil))
	return base64.StdEncoding.EncodeToString([]byte(digest))
}

// BoardPayment submits a purchase transaction for the payment. Mapping
// failures abort before any I/O; transport failures come back retriable.
func (a *Adapter) BoardPayment(ctx context.Context, payment *domain.Payment) boarding.Outcome {
	payload, err := buildPayload(payment)
	if err != nil {
		return boarding.Failure(gatewayName, err, false)
	}

	secret, err := a.secrets.GetSecret(ctx, a.config.SecretPath)
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingTransport, "fetch gateway api secret", err), true)
	}

	nonce := a.nonce()
	timestamp := strconv.FormatInt(a.now().UnixMilli(), 10)
	signature := signRequest(a.config.APIKey, secret.Value, a.config.Token, nonce, timestamp, payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(payload))
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingTransport, "build purchase request", err), false)
	}
	req.Header.Set("apikey", a.config.APIKey)
	req.Header.Set("token", a.config.Token)
	req.Header.Set("Content-type", "application/json")
	req.Header.Set("Authorization", signature)
	req.Header.Set("nonce", nonce)
	req.Header.Set("timestamp", timestamp)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingTransport, "purchase request failed", err), true)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.logger.Warn("gateway rejected purchase",
			zap.String("payment_id", payment.ID),
			zap.Int("status", resp.StatusCode),
		)
		return boarding.Failure(gatewayName,
			domain.NewDomainError(domain.ErrorCodeBoardingTransport, "gateway returned non-success status").
				WithDetail("status", resp.StatusCode),
			resp.StatusCode >= http.StatusInternalServerError)
	}

	var ack struct {
		TransactionID string `json:"transaction_id"`
	}
	_ = json.Unmarshal(body, &ack)

	a.logger.Info("payment boarded",
		zap.String("payment_id", payment.ID),
		zap.String("transaction_id", ack.TransactionID),
	)
	return boarding.Succeeded(gatewayName, ack.TransactionID)
}
