package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricDecisions          = "gatekeeper.decisions.total"
	MetricSecretFetches      = "gatekeeper.secret.fetch.total"
	MetricSecretFetchLatency = "gatekeeper.secret.fetch.duration_ms"
	MetricSecretCacheHits    = "gatekeeper.secret.cache.hits"
)

// Metrics records authorizer metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordDecision counts one authorization decision. reason is empty for
	// Allow decisions.
	RecordDecision(ctx context.Context, effect, reason string)

	// RecordSecretFetch records one external secret fetch.
	RecordSecretFetch(ctx context.Context, duration time.Duration, err error)

	// RecordCacheHit counts a secret served from cache.
	RecordCacheHit(ctx context.Context)
}

type metricsImpl struct {
	decisions    metric.Int64Counter
	fetches      metric.Int64Counter
	fetchLatency metric.Float64Histogram
	cacheHits    metric.Int64Counter
}

// NewMetrics creates Metrics backed by meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	decisions, err := meter.Int64Counter(
		MetricDecisions,
		metric.WithDescription("Authorization decisions by effect and reason"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	fetches, err := meter.Int64Counter(
		MetricSecretFetches,
		metric.WithDescription("External secret fetches by outcome"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	fetchLatency, err := meter.Float64Histogram(
		MetricSecretFetchLatency,
		metric.WithDescription("External secret fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		MetricSecretCacheHits,
		metric.WithDescription("Secrets served from the in-process cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		decisions:    decisions,
		fetches:      fetches,
		fetchLatency: fetchLatency,
		cacheHits:    cacheHits,
	}, nil
}

func (m *metricsImpl) RecordDecision(ctx context.Context, effect, reason string) {
	if reason == "" {
		reason = "none"
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("effect", effect),
		attribute.String("reason", reason),
	))
}

func (m *metricsImpl) RecordSecretFetch(ctx context.Context, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	opt := metric.WithAttributes(attribute.String("outcome", outcome))

	m.fetches.Add(ctx, 1, opt)
	m.fetchLatency.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}

type nopMetrics struct{}

func (nopMetrics) RecordDecision(context.Context, string, string)          {}
func (nopMetrics) RecordSecretFetch(context.Context, time.Duration, error) {}
func (nopMetrics) RecordCacheHit(context.Context)                          {}
