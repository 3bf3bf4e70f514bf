// Package secret resolves the shared signing secret used to verify bearer
// tokens.
//
// A Provider fetches a raw secret record from an external store by
// identifier. AWS Secrets Manager is the production provider; the env
// provider reads records from environment variables for local runs.
// Providers are created by name through a Registry.
//
// CachedSource sits in front of a Provider. It parses the record as a JSON
// object, extracts the configured field, and keeps the value in a
// single-slot cache for the configured expiry, so a warm process performs
// at most one external fetch per expiry window:
//
//	source := secret.NewCachedSource(provider, secret.SourceConfig{
//	    SecretID: "prod/auth0",
//	    Field:    "AUTH0_SECRET",
//	    Cache:    cache.DefaultPolicy(),
//	    FailOnFetchError: true,
//	}, observe.NopInstruments())
//	key, err := source.GetSecret(ctx)
package secret
