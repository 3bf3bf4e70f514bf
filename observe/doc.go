// Package observe provides the logging, tracing and metrics used by the
// authorizer.
//
// It is a pure instrumentation library: the Observer owns OpenTelemetry
// providers built from exporter names, and Instruments bundles a Tracer,
// Metrics and Logger so components can be handed a single value. Use
// NopInstruments in tests and anywhere telemetry is not wanted.
//
// Logs are JSON lines. Fields whose key names a credential (token, secret,
// credential, password, api_key) are redacted before they are written.
package observe
