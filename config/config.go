package config

import (
	"slices"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/jonwraymond/gatekeeper/auth"
	"github.com/jonwraymond/gatekeeper/cache"
	"github.com/jonwraymond/gatekeeper/observe"
	"github.com/jonwraymond/gatekeeper/resilience"
	"github.com/jonwraymond/gatekeeper/secret"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "AUTH_0"

// DefaultFiles are the YAML files consulted when Load is called without any.
// Missing files are skipped.
var DefaultFiles = []string{"gatekeeper.yaml", "/etc/gatekeeper/gatekeeper.yaml"}

// Config holds the complete authorizer configuration.
type Config struct {
	SecretID       string `env:"SECRET_ID" yaml:"secret_id" usage:"Secret store identifier of the signing secret record"`
	SecretField    string `env:"SECRET_FIELD" yaml:"secret_field" usage:"Field of the JSON record holding the signing secret"`
	SecretProvider string `env:"SECRET_PROVIDER" yaml:"secret_provider" default:"aws-secretsmanager" usage:"Secret provider (aws-secretsmanager|env)"`
	Region         string `env:"REGION" yaml:"region" usage:"AWS region override for the secret store"`

	CacheEnabled     bool          `env:"CACHE_ENABLED" yaml:"cache_enabled" default:"true" usage:"Cache the signing secret"`
	CacheExpiry      time.Duration `env:"CACHE_EXPIRY" yaml:"cache_expiry" default:"60s" usage:"Signing secret cache lifetime"`
	FailOnFetchError bool          `env:"FAIL_ON_FETCH_ERROR" yaml:"fail_on_fetch_error" default:"true" usage:"Deny instead of serving a stale secret when a fetch fails"`
	FetchAttempts    int           `env:"FETCH_ATTEMPTS" yaml:"fetch_attempts" default:"1" usage:"Attempts per secret fetch"`

	Algorithms          []string      `env:"ALGORITHMS" yaml:"algorithms" default:"HS256" usage:"Accepted signing algorithms"`
	RejectExtraSegments bool          `env:"REJECT_EXTRA_SEGMENTS" yaml:"reject_extra_segments" default:"false" usage:"Reject credentials with segments after the token"`
	Leeway              time.Duration `env:"LEEWAY" yaml:"leeway" default:"0s" usage:"Clock skew tolerated on time claims"`
	Issuer              string        `env:"ISSUER" yaml:"issuer" usage:"Required iss claim, if set"`
	Audience            string        `env:"AUDIENCE" yaml:"audience" usage:"Required aud claim, if set"`

	ServiceName     string `env:"SERVICE_NAME" yaml:"service_name" default:"gatekeeper" usage:"Service name reported in telemetry"`
	LogLevel        string `env:"LOG_LEVEL" yaml:"log_level" default:"info" usage:"Log level (debug|info|warn|error)"`
	TracingExporter string `env:"TRACING_EXPORTER" yaml:"tracing_exporter" default:"none" usage:"Trace exporter (otlp|stdout|none)"`
	MetricsExporter string `env:"METRICS_EXPORTER" yaml:"metrics_exporter" default:"none" usage:"Metrics exporter (otlp|prometheus|stdout|none)"`
}

// Load reads configuration from the environment and the given YAML files
// (DefaultFiles when none are given), expands ${VAR} references in the
// secret identifiers and validates the result.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = DefaultFiles
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:          true,
		EnvPrefix:          EnvPrefix,
		AllowUnknownEnvs:   true,
		AllowUnknownFields: true,
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
			".yml":  aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) expand() error {
	for _, v := range []*string{&c.SecretID, &c.SecretField} {
		expanded, err := secret.ExpandEnvStrict(*v)
		if err != nil {
			return errors.Wrap(err, "expand config")
		}
		*v = expanded
	}
	return nil
}

// Validate reports missing or unusable settings.
func (c *Config) Validate() error {
	if c.SecretID == "" {
		return errors.New("secret id is required: set " + EnvPrefix + "_SECRET_ID")
	}
	if c.SecretField == "" {
		return errors.New("secret field is required: set " + EnvPrefix + "_SECRET_FIELD")
	}
	if !slices.Contains(secret.DefaultRegistry.List(), c.SecretProvider) {
		return errors.Errorf("unknown secret provider %q", c.SecretProvider)
	}
	if c.CacheEnabled && c.CacheExpiry <= 0 {
		return errors.Errorf("cache expiry must be positive, got %s", c.CacheExpiry)
	}
	if c.FetchAttempts < 1 {
		return errors.Errorf("fetch attempts must be at least 1, got %d", c.FetchAttempts)
	}
	if err := c.Verifier().Validate(); err != nil {
		return errors.Wrap(err, "verifier config")
	}
	oc := c.Observe()
	if err := oc.Validate(); err != nil {
		return errors.Wrap(err, "observe config")
	}
	return nil
}

// ProviderConfig returns the factory config for the secret provider.
func (c *Config) ProviderConfig() map[string]any {
	cfg := map[string]any{}
	if c.Region != "" {
		cfg["region"] = c.Region
	}
	return cfg
}

// Source returns the CachedSource configuration.
func (c *Config) Source() secret.SourceConfig {
	policy := cache.NoCachePolicy()
	if c.CacheEnabled {
		policy = cache.Policy{Enabled: true, Expiry: c.CacheExpiry}
	}
	return secret.SourceConfig{
		SecretID:         c.SecretID,
		Field:            c.SecretField,
		Cache:            policy,
		FailOnFetchError: c.FailOnFetchError,
		Retry:            c.Retry(),
	}
}

// Retry returns the retry policy for secret fetches. Missing secrets are
// not retried.
func (c *Config) Retry() *resilience.Retry {
	return resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts: c.FetchAttempts,
		Jitter:      true,
		RetryIf: func(err error) bool {
			return err != nil && !errors.Is(err, secret.ErrNotFound)
		},
	})
}

// Verifier returns the Verifier configuration.
func (c *Config) Verifier() auth.VerifierConfig {
	return auth.VerifierConfig{
		Algorithms:          c.Algorithms,
		RejectExtraSegments: c.RejectExtraSegments,
		Leeway:              c.Leeway,
		Issuer:              c.Issuer,
		Audience:            c.Audience,
	}
}

// Observe returns the telemetry configuration.
func (c *Config) Observe() observe.Config {
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     Version,
		Tracing: observe.TracingConfig{
			Enabled:   c.TracingExporter != "none",
			Exporter:  c.TracingExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.MetricsExporter != "none",
			Exporter: c.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.LogLevel,
		},
	}
}
