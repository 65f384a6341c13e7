package instrumentation

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *metric.ManualReader) {
	t.Helper()

	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	byName := map[string]metricdata.Metrics{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func TestRecordGoogleAPIOperation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordGoogleAPIOperation(ctx, ServiceDrive, "files.list", StatusSuccess, 40*time.Millisecond)
	m.RecordGoogleAPIOperation(ctx, ServiceSheets, "values.update", StatusError, 10*time.Millisecond)

	byName := collect(t, reader)

	counter, ok := byName["google_api_operations_total"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("Expected google_api_operations_total to be recorded")
	}
	if len(counter.DataPoints) != 2 {
		t.Errorf("Expected 2 data points, got %d", len(counter.DataPoints))
	}

	if _, ok := byName["google_api_operation_duration_seconds"]; !ok {
		t.Error("Expected operation duration histogram to be recorded")
	}
}

func TestRecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordToolInvocation(context.Background(), "drive_list_files", StatusSuccess, 100*time.Millisecond)

	byName := collect(t, reader)
	counter, ok := byName["mcp_tool_invocations_total"].Data.(metricdata.Sum[int64])
	if !ok || len(counter.DataPoints) != 1 {
		t.Fatalf("Expected one tool invocation data point, got %+v", byName["mcp_tool_invocations_total"])
	}
	if counter.DataPoints[0].Value != 1 {
		t.Errorf("Expected count 1, got %d", counter.DataPoints[0].Value)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordHTTPRequest(context.Background(), "GET", "/metrics", 200, 5*time.Millisecond)

	byName := collect(t, reader)
	if _, ok := byName["http_requests_total"]; !ok {
		t.Error("Expected http_requests_total to be recorded")
	}
}

func TestZeroValueMetricsAreNoOp(t *testing.T) {
	var m Metrics

	// Must not panic without registered instruments.
	m.RecordGoogleAPIOperation(context.Background(), ServiceDrive, "files.list", StatusSuccess, time.Second)
	m.RecordToolInvocation(context.Background(), "drive_get_link", StatusError, time.Second)
	m.RecordHTTPRequest(context.Background(), "GET", "/healthz", 200, time.Second)
}
