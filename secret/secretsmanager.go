package secret

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerProviderName is the registry name of the AWS Secrets Manager provider.
const SecretsManagerProviderName = "aws-secretsmanager"

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerProvider fetches secret records from AWS Secrets Manager.
// The reference is the secret ID (name or ARN); the record is the
// SecretString, or the SecretBinary bytes when no string is stored.
type SecretsManagerProvider struct {
	client SecretsManagerAPI
}

// NewSecretsManagerProvider creates a provider using client.
func NewSecretsManagerProvider(client SecretsManagerAPI) *SecretsManagerProvider {
	return &SecretsManagerProvider{client: client}
}

// NewSecretsManagerProviderFromConfig is the registry factory.
//
// Recognized keys:
//   - "client": a SecretsManagerAPI to use instead of building one
//   - "region": AWS region override for the default credential chain
func NewSecretsManagerProviderFromConfig(ctx context.Context, cfg map[string]any) (Provider, error) {
	if client, ok := cfg["client"].(SecretsManagerAPI); ok && client != nil {
		return NewSecretsManagerProvider(client), nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region, ok := cfg["region"].(string); ok && region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSecretsManagerProvider(secretsmanager.NewFromConfig(awsCfg)), nil
}

// Name returns "aws-secretsmanager".
func (p *SecretsManagerProvider) Name() string {
	return SecretsManagerProviderName
}

// Resolve returns the raw record stored under ref.
func (p *SecretsManagerProvider) Resolve(ctx context.Context, ref string) (string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(ref),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return "", fmt.Errorf("get secret value: %w", err)
	}

	if out.SecretString != nil {
		return aws.ToString(out.SecretString), nil
	}
	if len(out.SecretBinary) > 0 {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("%w: %s has no value", ErrNotFound, ref)
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (p *SecretsManagerProvider) Close() error {
	return nil
}

var _ Provider = (*SecretsManagerProvider)(nil)
