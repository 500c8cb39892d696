package secrets

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/adapters/ports"
)

// envSecretManager resolves secrets from process environment variables.
// Development convenience; production deployments use AWS Secrets
// Manager or Vault.
type envSecretManager struct {
	logger *zap.Logger
}

// NewEnvSecretManager creates an environment-variable secret manager.
// The secret path is the variable name, e.g. "PAYEEZY_API_SECRET".
func NewEnvSecretManager(logger *zap.Logger) ports.SecretManagerAdapter {
	return &envSecretManager{logger: logger}
}

func (m *envSecretManager) GetSecret(_ context.Context, path string) (*ports.Secret, error) {
	value, ok := os.LookupEnv(path)
	if !ok || value == "" {
		return nil, fmt.Errorf("secret not set: %s", path)
	}

	m.logger.Debug("secret resolved from environment", zap.String("path", path))
	return &ports.Secret{Value: value, Version: "env"}, nil
}
