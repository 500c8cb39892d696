package auth

import (
	"time"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
)

// StrategyType enumerates the two supported authentication modes. The
// configuration value must match one of these exactly; matching is
// case-sensitive.
type StrategyType string

const (
	StrategyHMAC  StrategyType = "HMAC"
	StrategyOAuth StrategyType = "OAUTH"
)

// StrategyConfig carries the configuration the selected strategy needs.
type StrategyConfig struct {
	Type            string
	PrincipalHeader string        // HMAC: header naming the caller, defaults to "user"
	JWTSigningKey   string        // OAUTH: process-wide signing key
	JWTIssuer       string        // OAUTH: issuer claim
	JWTTokenTTL     time.Duration // OAUTH: token lifetime
}

// SelectStrategy resolves the configured strategy type once at startup.
// An unknown value is a configuration error and must keep the process
// from serving traffic; there is no default.
func SelectStrategy(cfg StrategyConfig, store CredentialStore, logger *zap.Logger) (Strategy, error) {
	switch StrategyType(cfg.Type) {
	case StrategyHMAC:
		return NewHMACStrategy(store, cfg.PrincipalHeader, logger), nil
	case StrategyOAuth:
		return NewTokenStrategy(store, cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTTokenTTL, logger), nil
	default:
		return nil, domain.NewDomainError(domain.ErrorCodeConfigInvalid, "unknown security type").
			WithDetail("security_type", cfg.Type)
	}
}
