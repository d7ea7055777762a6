package instrumentation

import (
	"context"
	"testing"
)

func TestNewProvider_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	provider, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if provider.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if provider.Metrics() == nil {
		t.Error("Metrics() = nil, want no-op recorder")
	}
	if provider.PrometheusHandler() != nil {
		t.Error("PrometheusHandler() != nil for disabled provider")
	}
	// Shutdown of a disabled provider is a no-op.
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
	// Tracer must still hand out a usable (noop) tracer.
	_, span := provider.Tracer("test").Start(context.Background(), "op")
	span.End()
}

func TestNewProvider_Prometheus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = ExporterPrometheus
	cfg.TracingExporter = ExporterNone

	provider, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error: %v", err)
		}
	}()

	if !provider.Enabled() {
		t.Error("Enabled() = false, want true")
	}
	if provider.PrometheusHandler() == nil {
		t.Error("PrometheusHandler() = nil, want exporter")
	}
	if provider.Metrics() == nil {
		t.Fatal("Metrics() = nil")
	}
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = "graphite"

	if _, err := NewProvider(context.Background(), cfg); err == nil {
		t.Error("NewProvider() with unknown exporter expected error, got nil")
	}
}
