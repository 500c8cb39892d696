package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aherrington/merchant-api/internal/adapters/bluepay"
	"github.com/aherrington/merchant-api/internal/adapters/firstdata"
	"github.com/aherrington/merchant-api/internal/adapters/payeezy"
	"github.com/aherrington/merchant-api/internal/adapters/ports"
	"github.com/aherrington/merchant-api/internal/adapters/postgres"
	"github.com/aherrington/merchant-api/internal/adapters/secrets"
	"github.com/aherrington/merchant-api/internal/auth"
	"github.com/aherrington/merchant-api/internal/config"
	"github.com/aherrington/merchant-api/internal/domain"
	"github.com/aherrington/merchant-api/internal/middleware"
	"github.com/aherrington/merchant-api/internal/services/boarding"
	"github.com/aherrington/merchant-api/internal/services/user"
)

func main() {
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting merchant API",
		zap.String("version", "0.1.0"),
	)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		// Configuration errors are the only class allowed to stop startup.
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	dbPool, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbPool.Close()

	logger.Info("Database connection established",
		zap.String("database", cfg.Database.Database),
	)

	users := postgres.NewUserRepository(dbPool, logger)
	merchants := postgres.NewMerchantRepository(dbPool, logger)
	payments := postgres.NewPaymentRepository(dbPool, logger)

	secretManager, err := initSecretManager(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize secret manager", zap.Error(err))
	}

	// A misconfigured security type must keep the process from serving.
	strategy, err := auth.SelectStrategy(cfg.Security.StrategyConfig(), users, logger)
	if err != nil {
		logger.Fatal("Failed to select authentication strategy", zap.Error(err))
	}
	logger.Info("Authentication strategy selected",
		zap.String("security_type", cfg.Security.Type),
	)

	var tokens *auth.TokenStrategy
	if ts, ok := strategy.(*auth.TokenStrategy); ok {
		tokens = ts
	}
	userService := user.NewService(users, tokens, auth.StrategyType(cfg.Security.Type), logger)

	httpClient := &http.Client{Timeout: cfg.Boarding.Timeout}
	dispatcher := initBoarding(cfg, httpClient, secretManager, logger)
	defer dispatcher.Close()

	apiHandler := newAPI(userService, merchants, payments, dispatcher, cfg.Boarding, logger)

	authenticate := middleware.Authentication(strategy, logger)
	requireUser := middleware.RequireAuthority(domain.RoleUser, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/register", apiHandler.handleRegister)
	mux.HandleFunc("POST /api/v1/users/login", apiHandler.handleLogin)
	mux.Handle("POST /api/v1/merchants", requireUser(http.HandlerFunc(apiHandler.handleSaveMerchant)))
	mux.Handle("POST /api/v1/payments", requireUser(http.HandlerFunc(apiHandler.handleSavePayment)))
	mux.Handle("DELETE /api/v1/payments/{id}", requireUser(http.HandlerFunc(apiHandler.handleDeletePayment)))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: authenticate(mux),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	go func() {
		logger.Info("HTTP server listening",
			zap.String("address", httpServer.Addr),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("Metrics server listening",
			zap.Int("port", cfg.Server.MetricsPort),
		)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to serve metrics", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown error", zap.Error(err))
	}

	// Drain queued boarding attempts before exiting.
	dispatcher.Close()

	logger.Info("Servers stopped")
}

func initLogger() *zap.Logger {
	env := os.Getenv("ENVIRONMENT")

	if env == "production" {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		logger, _ := zapCfg.Build()
		return logger
	}

	logger, _ := zap.NewDevelopment()
	return logger
}

// initDatabase initializes the PostgreSQL connection pool
func initDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func initSecretManager(cfg *config.Config, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.Secrets.Backend {
	case "aws":
		awsCfg := secrets.DefaultAWSSecretsManagerConfig(cfg.Secrets.AWSRegion)
		awsCfg.CacheTTL = cfg.Secrets.CacheTTL
		return secrets.NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)
	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.Secrets.VaultAddress)
		vaultCfg.Token = cfg.Secrets.VaultToken
		vaultCfg.CacheTTL = cfg.Secrets.CacheTTL
		return secrets.NewVaultAdapter(ctx, vaultCfg, logger)
	default:
		return secrets.NewEnvSecretManager(logger), nil
	}
}

func initBoarding(cfg *config.Config, httpClient ports.HTTPClient, secretManager ports.SecretManagerAdapter, logger *zap.Logger) *boarding.Dispatcher {
	marketplace := firstdata.NewAdapter(firstdata.Config{
		BaseURL:    cfg.FirstData.URL,
		Username:   cfg.FirstData.Username,
		SecretPath: cfg.FirstData.SecretPath,
	}, httpClient, secretManager, logger)

	transactions := payeezy.NewAdapter(payeezy.Config{
		URL:        cfg.Payeezy.URL,
		APIKey:     cfg.Payeezy.APIKey,
		Token:      cfg.Payeezy.Token,
		SecretPath: cfg.Payeezy.SecretPath,
	}, httpClient, secretManager, logger)

	resolver := boarding.NewResolver(map[domain.GatewayType]boarding.Gateway{
		domain.GatewayTypeBluepay: bluepay.NewGateway(logger),
		domain.GatewayTypePayeezy: boarding.Compose("payeezy", marketplace, transactions),
	})

	return boarding.NewDispatcher(resolver, cfg.Boarding.Workers, cfg.Boarding.Timeout, logger)
}
