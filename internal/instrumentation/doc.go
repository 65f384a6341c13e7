// Package instrumentation configures OpenTelemetry metrics and tracing.
//
// Config is read from environment variables (OTEL_*, METRICS_EXPORTER,
// TRACING_EXPORTER, INSTRUMENTATION_ENABLED). Provider wires the configured
// exporters; Metrics records Google API operations, MCP tool invocations and
// HTTP requests against the metrics server. With instrumentation disabled
// every recorder is a cheap no-op, so callers never branch on it.
package instrumentation
