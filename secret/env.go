package secret

import (
	"context"
	"fmt"
	"os"
)

// EnvProviderName is the registry name of the environment provider.
const EnvProviderName = "env"

// EnvProvider resolves references as environment variable names. The
// variable holds the full JSON record, which makes it a stand-in for the
// secret store when running outside AWS.
type EnvProvider struct{}

// NewEnvProvider creates an environment provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Name returns "env".
func (p *EnvProvider) Name() string {
	return EnvProviderName
}

// Resolve returns the value of the environment variable named ref.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("%w: environment variable %s is not set", ErrNotFound, ref)
	}
	return v, nil
}

// Close is a no-op.
func (p *EnvProvider) Close() error {
	return nil
}

var _ Provider = (*EnvProvider)(nil)
