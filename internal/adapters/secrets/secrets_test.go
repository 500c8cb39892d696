package secrets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aherrington/merchant-api/internal/adapters/ports"
)

func TestEnvSecretManager(t *testing.T) {
	m := NewEnvSecretManager(zaptest.NewLogger(t))

	t.Setenv("PAYEEZY_API_SECRET", "86fbae7030253af3cd15faef2a1f4b67")

	secret, err := m.GetSecret(context.Background(), "PAYEEZY_API_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "86fbae7030253af3cd15faef2a1f4b67", secret.Value)

	_, err = m.GetSecret(context.Background(), "MISSING_SECRET")
	assert.Error(t, err)
}

func TestSecretCache_TTL(t *testing.T) {
	cache := newSecretCache(true, 30*time.Millisecond)

	cache.set("gateways/payeezy", &ports.Secret{Value: "s1"})
	require.NotNil(t, cache.get("gateways/payeezy"))

	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, cache.get("gateways/payeezy"))
}

func TestSecretCache_Disabled(t *testing.T) {
	cache := newSecretCache(false, time.Minute)

	cache.set("gateways/payeezy", &ports.Secret{Value: "s1"})
	assert.Nil(t, cache.get("gateways/payeezy"))
}
