package firstdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/adapters/ports"
	"github.com/aherrington/merchant-api/internal/auth"
	"github.com/aherrington/merchant-api/internal/domain"
	"github.com/aherrington/merchant-api/internal/services/boarding"
)

const (
	gatewayName  = "firstdata"
	boardingPath = "/marketplace/v1/merchantorders"

	// RFC 1123 with the zone pinned to GMT, as the marketplace expects.
	dateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// Config contains marketplace API settings.
type Config struct {
	BaseURL    string
	Username   string
	SecretPath string // signing key location in the secret manager
}

// Adapter boards merchants through the First Data marketplace API. Each
// request signs its own Date header with HMAC-SHA1; the signing key is
// resolved through the secret manager on every attempt so rotation takes
// effect without a restart.
type Adapter struct {
	config     Config
	httpClient ports.HTTPClient
	secrets    ports.SecretManagerAdapter
	logger     *zap.Logger
	now        func() time.Time
}

// NewAdapter creates a marketplace boarding adapter.
func NewAdapter(config Config, httpClient ports.HTTPClient, secrets ports.SecretManagerAdapter, logger *zap.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: httpClient,
		secrets:    secrets,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the adapter's clock. Test hook.
func (a *Adapter) WithClock(now func() time.Time) *Adapter {
	a.now = now
	return a
}

// BoardMerchant submits a boarding order for the merchant. All failure
// modes come back as a failed outcome; nothing here can fail the save
// that triggered it.
func (a *Adapter) BoardMerchant(ctx context.Context, merchant *domain.Merchant) boarding.Outcome {
	payload, err := json.Marshal(newBoardingOrder(merchant))
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingPayload, "marshal boarding order", err), false)
	}

	secret, err := a.secrets.GetSecret(ctx, a.config.SecretPath)
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingTransport, "fetch marketplace signing key", err), true)
	}

	date := a.now().UTC().Format(dateLayout)
	signature, err := auth.Sign(secret.Value, "date: "+date, auth.HmacSHA1)
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingPayload, "sign boarding order", err), false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.config.BaseURL+boardingPath, bytes.NewReader(payload))
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingTransport, "build boarding request", err), false)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("date", date)
	req.Header.Set("authorization", fmt.Sprintf(
		`hmac username="%s", algorithm="hmac-sha1", headers="date", signature="%s"`,
		a.config.Username, signature))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return boarding.Failure(gatewayName,
			domain.WrapError(domain.ErrorCodeBoardingTransport, "marketplace request failed", err), true)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.logger.Warn("marketplace rejected boarding order",
			zap.String("merchant_id", merchant.ID),
			zap.Int("status", resp.StatusCode),
		)
		return boarding.Failure(gatewayName,
			domain.NewDomainError(domain.ErrorCodeBoardingTransport, "marketplace returned non-success status").
				WithDetail("status", resp.StatusCode),
			resp.StatusCode >= http.StatusInternalServerError)
	}

	// The order reference is best-effort; an unparseable body is still a
	// success at the transport level.
	var ack struct {
		OrderID string `json:"orderId"`
	}
	_ = json.Unmarshal(body, &ack)

	a.logger.Info("merchant boarding order accepted",
		zap.String("merchant_id", merchant.ID),
		zap.String("order_id", ack.OrderID),
	)
	return boarding.Succeeded(gatewayName, ack.OrderID)
}
