package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aherrington/merchant-api/internal/auth"
	"github.com/aherrington/merchant-api/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Security  SecurityConfig
	Boarding  BoardingConfig
	FirstData FirstDataConfig
	Payeezy   PayeezyConfig
	Secrets   SecretsConfig
	Logger    LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	Host        string
	MetricsPort int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// SecurityConfig selects and parameterizes the authentication strategy.
// Type must be exactly "HMAC" or "OAUTH"; anything else stops startup.
type SecurityConfig struct {
	Type            string
	PrincipalHeader string
	JWTSigningKey   string
	JWTIssuer       string
	JWTTokenTTL     time.Duration
}

// BoardingConfig holds dispatcher and trigger settings
type BoardingConfig struct {
	Workers              int
	Timeout              time.Duration
	BoardMerchantsOnSave bool
	BoardPaymentsOnSave  bool
}

// FirstDataConfig holds marketplace boarding settings
type FirstDataConfig struct {
	URL        string
	Username   string
	SecretPath string
}

// PayeezyConfig holds transaction gateway settings
type PayeezyConfig struct {
	URL        string
	APIKey     string
	Token      string
	SecretPath string
}

// SecretsConfig selects the secret-manager backend
type SecretsConfig struct {
	Backend      string // env, aws, vault
	AWSRegion    string
	VaultAddress string
	VaultToken   string
	CacheTTL     time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "merchant_api"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),
		},
		Security: SecurityConfig{
			Type:            getEnv("SECURITY_TYPE", "HMAC"),
			PrincipalHeader: getEnv("SECURITY_PRINCIPAL_HEADER", auth.DefaultPrincipalHeader),
			JWTSigningKey:   getEnv("JWT_SIGNING_KEY", ""),
			JWTIssuer:       getEnv("JWT_ISSUER", "http://localhost"),
			JWTTokenTTL:     time.Duration(getEnvAsInt("JWT_TOKEN_TTL_SECONDS", 3600)) * time.Second,
		},
		Boarding: BoardingConfig{
			Workers:              getEnvAsInt("BOARDING_WORKERS", 4),
			Timeout:              time.Duration(getEnvAsInt("BOARDING_TIMEOUT_SECONDS", 15)) * time.Second,
			BoardMerchantsOnSave: getEnvAsBool("BOARD_MERCHANTS_ON_SAVE", true),
			BoardPaymentsOnSave:  getEnvAsBool("BOARD_PAYMENTS_ON_SAVE", true),
		},
		FirstData: FirstDataConfig{
			URL:        getEnv("FIRSTDATA_URL", "https://cat.api.firstdata.com"),
			Username:   getEnv("FIRSTDATA_USER", ""),
			SecretPath: getEnv("FIRSTDATA_SECRET_PATH", "MARKETPLACE_HMAC_SECRET"),
		},
		Payeezy: PayeezyConfig{
			URL:        getEnv("PAYEEZY_URL", "https://api-cert.payeezy.com/v1/transactions"),
			APIKey:     getEnv("PAYEEZY_API_KEY", ""),
			Token:      getEnv("PAYEEZY_TOKEN", ""),
			SecretPath: getEnv("PAYEEZY_SECRET_PATH", "PAYEEZY_API_SECRET"),
		},
		Secrets: SecretsConfig{
			Backend:      getEnv("SECRETS_BACKEND", "env"),
			AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
			VaultAddress: getEnv("VAULT_ADDR", ""),
			VaultToken:   getEnv("VAULT_TOKEN", ""),
			CacheTTL:     time.Duration(getEnvAsInt("SECRETS_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Password == "" {
		return domain.NewDomainError(domain.ErrorCodeConfigInvalid, "DB_PASSWORD is required")
	}
	if c.Security.Type == string(auth.StrategyOAuth) && c.Security.JWTSigningKey == "" {
		return domain.NewDomainError(domain.ErrorCodeConfigInvalid,
			"JWT_SIGNING_KEY is required when SECURITY_TYPE=OAUTH")
	}
	if c.Boarding.BoardMerchantsOnSave && c.FirstData.Username == "" {
		return domain.NewDomainError(domain.ErrorCodeConfigInvalid,
			"FIRSTDATA_USER is required when merchant boarding is enabled")
	}
	if c.Boarding.BoardPaymentsOnSave && (c.Payeezy.APIKey == "" || c.Payeezy.Token == "") {
		return domain.NewDomainError(domain.ErrorCodeConfigInvalid,
			"PAYEEZY_API_KEY and PAYEEZY_TOKEN are required when payment boarding is enabled")
	}
	switch c.Secrets.Backend {
	case "env", "aws":
	case "vault":
		if c.Secrets.VaultAddress == "" {
			return domain.NewDomainError(domain.ErrorCodeConfigInvalid,
				"VAULT_ADDR is required when SECRETS_BACKEND=vault")
		}
	default:
		return domain.NewDomainError(domain.ErrorCodeConfigInvalid,
			"unknown secrets backend").WithDetail("secrets_backend", c.Secrets.Backend)
	}
	return nil
}

// StrategyConfig converts the security section into the shape the
// strategy selector consumes.
func (c *SecurityConfig) StrategyConfig() auth.StrategyConfig {
	return auth.StrategyConfig{
		Type:            c.Type,
		PrincipalHeader: c.PrincipalHeader,
		JWTSigningKey:   c.JWTSigningKey,
		JWTIssuer:       c.JWTIssuer,
		JWTTokenTTL:     c.JWTTokenTTL,
	}
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
