package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter types.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Status values for metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Google service names for metric labels.
const (
	ServiceDrive  = "drive"
	ServiceSheets = "sheets"
)

// Config holds the OpenTelemetry instrumentation configuration.
type Config struct {
	// ServiceName names the service in exported telemetry (default: sheetfeed).
	ServiceName string

	// ServiceVersion is stamped at build time.
	ServiceVersion string

	// ServiceInstanceID identifies this instance; defaults to the hostname.
	ServiceInstanceID string

	// Enabled turns instrumentation on. Set INSTRUMENTATION_ENABLED=false to
	// run without metrics and tracing.
	Enabled bool

	// MetricsExporter is one of prometheus, otlp, stdout (default: prometheus).
	MetricsExporter string

	// TracingExporter is one of otlp, stdout, none (default: none).
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint, host:port without scheme.
	OTLPEndpoint string

	// OTLPInsecure disables TLS on OTLP export. Local development only.
	OTLPInsecure bool

	// TraceSamplingRate is the trace sampling ratio, 0.0 to 1.0.
	TraceSamplingRate float64

	// PrometheusEndpoint is the metrics HTTP path (default: /metrics).
	PrometheusEndpoint string
}

// DefaultConfig builds a Config from environment variables, falling back to
// defaults suitable for local use.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envOr("OTEL_SERVICE_NAME", "sheetfeed"),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  envOr("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:            envBoolOr("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:    envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    envOr("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:       envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       envBoolOr("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:  envFloatOr("OTEL_TRACES_SAMPLER_ARG", 0.1),
		PrometheusEndpoint: envOr("PROMETHEUS_ENDPOINT", "/metrics"),
	}
}

// Validate checks exporter names, the sampling rate and OTLP preconditions.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.OTLPEndpoint == "" {
		if c.MetricsExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
		}
		if c.TracingExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
		}
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
