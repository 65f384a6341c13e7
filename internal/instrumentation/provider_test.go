package instrumentation

import (
	"context"
	"testing"
)

func TestNewProviderDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if p.Enabled() {
		t.Error("Expected provider to be disabled")
	}
	if p.Metrics() == nil {
		t.Error("Expected a no-op metrics recorder, got nil")
	}
	if p.Tracer("test") == nil {
		t.Error("Expected a no-op tracer, got nil")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown of disabled provider: %v", err)
	}
}

func TestNewProviderPrometheus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = ExporterPrometheus
	cfg.TracingExporter = ExporterNone

	p, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	defer func() { _ = p.Shutdown(context.Background()) }()

	if !p.Enabled() {
		t.Error("Expected provider to be enabled")
	}
	if p.Metrics() == nil {
		t.Error("Expected a metrics recorder")
	}
}

func TestNewProviderRejectsUnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = "statsd"

	if _, err := NewProvider(context.Background(), cfg); err == nil {
		t.Error("Expected an error for an unknown metrics exporter")
	}
}
