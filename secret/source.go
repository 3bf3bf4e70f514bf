package secret

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/gatekeeper/cache"
	"github.com/jonwraymond/gatekeeper/observe"
	"github.com/jonwraymond/gatekeeper/resilience"
)

// SourceConfig configures a CachedSource.
type SourceConfig struct {
	// SecretID identifies the record in the secret store.
	SecretID string

	// Field is the attribute of the JSON record that holds the signing secret.
	Field string

	// Cache controls whether and for how long the secret is cached.
	Cache cache.Policy

	// FailOnFetchError makes every failed fetch an error. When false, a
	// failed fetch falls back to the last successfully fetched value, if any.
	FailOnFetchError bool

	// Retry wraps each store call. Nil means a single attempt.
	Retry *resilience.Retry

	// Clock drives cache expiry. Default: time.Now
	Clock cache.Clock
}

// CachedSource resolves the current signing secret, serving it from a
// single-slot cache while it is fresh.
//
// Contract:
// - Concurrency: safe for concurrent use. Concurrent misses share one fetch.
// - Errors: every fetch failure is a *FetchError matching ErrFetch.
// - Secret values are never logged.
type CachedSource struct {
	provider Provider
	config   SourceConfig
	slot     *cache.Slot[string]
	group    singleflight.Group
	inst     observe.Instruments
	logger   observe.Logger
}

// NewCachedSource creates a CachedSource in front of provider.
func NewCachedSource(provider Provider, config SourceConfig, inst observe.Instruments) *CachedSource {
	inst = inst.Normalize()
	return &CachedSource{
		provider: provider,
		config:   config,
		slot:     cache.NewSlot[string](config.Cache, config.Clock),
		inst:     inst,
		logger: inst.Logger.With(
			observe.String("component", "secret"),
			observe.String("secret_id", config.SecretID),
			observe.String("provider", provider.Name()),
		),
	}
}

// GetSecret returns the cached secret if fresh, otherwise fetches, caches and
// returns it.
func (s *CachedSource) GetSecret(ctx context.Context) (string, error) {
	if v, ok := s.slot.Get(); ok {
		s.inst.Metrics.RecordCacheHit(ctx)
		return v, nil
	}

	// The fetch is shared by every waiter, so it must not end with the
	// first caller's context.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(s.config.SecretID, func() (any, error) {
		return s.fetch(fetchCtx)
	})
	if err == nil {
		return v.(string), nil
	}

	if !s.config.FailOnFetchError {
		if stale, ok := s.slot.Peek(); ok {
			s.logger.Warn(ctx, "serving stale secret after fetch failure", observe.Err(err))
			return stale, nil
		}
	}
	return "", err
}

// Invalidate drops the cached secret so the next GetSecret fetches.
func (s *CachedSource) Invalidate() {
	s.slot.Invalidate()
}

func (s *CachedSource) fetch(ctx context.Context) (string, error) {
	ctx, span := s.inst.Tracer.Start(ctx, observe.SpanSecretFetch,
		attribute.String("secret.provider", s.provider.Name()),
	)
	start := time.Now()

	value, err := s.fetchValue(ctx)

	s.inst.Metrics.RecordSecretFetch(ctx, time.Since(start), err)
	s.inst.Tracer.End(span, err)

	if err != nil {
		s.logger.Error(ctx, "secret fetch failed", observe.Err(err))
		return "", err
	}

	_ = s.slot.Set(value)
	s.logger.Debug(ctx, "secret fetched", observe.Field{Key: "expires_at", Value: s.slot.ExpiresAt()})
	return value, nil
}

func (s *CachedSource) fetchValue(ctx context.Context) (string, error) {
	record, err := resilience.Do(ctx, s.config.Retry, func(ctx context.Context) (string, error) {
		return s.provider.Resolve(ctx, s.config.SecretID)
	})
	if err != nil {
		return "", &FetchError{SecretID: s.config.SecretID, Err: err}
	}

	value, err := ExtractField(record, s.config.Field)
	if err != nil {
		return "", &FetchError{SecretID: s.config.SecretID, Err: err}
	}
	return value, nil
}

// ExtractField parses record as a JSON object and returns the string held
// under field.
func ExtractField(record, field string) (string, error) {
	var obj map[string]any
	// The decode error is dropped: it can quote fragments of the record.
	if err := json.Unmarshal([]byte(record), &obj); err != nil || obj == nil {
		return "", ErrMalformedRecord
	}

	raw, ok := obj[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}

	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySecret, field)
	}
	return value, nil
}
