package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(nil)

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}

	var body HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("Expected status ok, got %s", body.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	h := NewHealthChecker(nil)

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 when ready, got %d", rec.Code)
	}

	h.SetReady(false)
	rec = httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when not ready, got %d", rec.Code)
	}

	var body HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Checks["ready"] != "not ready" {
		t.Errorf("Expected ready check to fail, got %v", body.Checks)
	}
}

func TestReadinessHandlerDuringShutdown(t *testing.T) {
	sc := NewServerContext(context.Background(), nil, nil, false)
	h := NewHealthChecker(sc)

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 during shutdown, got %d", rec.Code)
	}
}

func TestServerContextShutdownIsIdempotent(t *testing.T) {
	sc := NewServerContext(context.Background(), nil, nil, true)

	if !sc.ReadOnly() {
		t.Error("Expected read-only context")
	}
	if sc.IsShutdown() {
		t.Error("Expected context not shut down initially")
	}

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("Expected context to report shut down")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("Expected lifecycle context to be cancelled")
	}
}
