package server

import (
	"context"
	"testing"

	"github.com/tickdone/ticktick-mcp/internal/instrumentation"
)

func TestNewMetricsServer_RequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Addr: ":0"})
	if err == nil {
		t.Error("NewMetricsServer() without provider expected error, got nil")
	}
}

func TestNewMetricsServer_RequiresEnabledProvider(t *testing.T) {
	cfg := instrumentation.DefaultConfig()
	cfg.Enabled = false
	provider, err := instrumentation.NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}

	_, err = NewMetricsServer(MetricsServerConfig{
		Addr:                    ":0",
		InstrumentationProvider: provider,
	})
	if err == nil {
		t.Error("NewMetricsServer() with disabled provider expected error, got nil")
	}
}

func TestNewMetricsServer_DefaultAddr(t *testing.T) {
	cfg := instrumentation.DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = instrumentation.ExporterPrometheus
	provider, err := instrumentation.NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	srv, err := NewMetricsServer(MetricsServerConfig{
		InstrumentationProvider: provider,
	})
	if err != nil {
		t.Fatalf("NewMetricsServer() error: %v", err)
	}
	if srv.Addr() != DefaultMetricsAddr {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), DefaultMetricsAddr)
	}

	// Shutdown before Start is a no-op.
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
}
