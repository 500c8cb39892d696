package ports

import "context"

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., gateway signing key)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for retrieving gateway credentials
// from a secret management service. Supported backends: environment
// variables (local development), AWS Secrets Manager, HashiCorp Vault.
// Implementation is responsible for:
//   - Authentication with the secret manager service
//   - Caching secrets appropriately (with TTL)
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - env: "PAYEEZY_API_SECRET"
	//   - AWS: "merchant-api/gateways/payeezy/secret"
	//   - Vault: "secret/data/merchant-api/gateways/payeezy"
	// Returns error if:
	//   - Secret does not exist
	//   - Insufficient permissions
	//   - Network communication fails
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
