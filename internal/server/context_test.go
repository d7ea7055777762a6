package server

import (
	"context"
	"testing"

	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

func newTestServerContext(t *testing.T, readOnly bool) *ServerContext {
	t.Helper()
	client, err := ticktick.NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	sc, err := NewServerContext(context.Background(), client, readOnly)
	if err != nil {
		t.Fatalf("NewServerContext() error: %v", err)
	}
	return sc
}

func TestNewServerContext_RequiresClient(t *testing.T) {
	if _, err := NewServerContext(context.Background(), nil, false); err == nil {
		t.Error("NewServerContext(nil client) expected error, got nil")
	}
}

func TestServerContext_ReadOnly(t *testing.T) {
	if !newTestServerContext(t, true).ReadOnly() {
		t.Error("ReadOnly() = false, want true")
	}
	if newTestServerContext(t, false).ReadOnly() {
		t.Error("ReadOnly() = true, want false")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc := newTestServerContext(t, false)

	if sc.IsShutdown() {
		t.Error("IsShutdown() = true before Shutdown()")
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}
	select {
	case <-sc.Context().Done():
	default:
		t.Error("Context() not cancelled after Shutdown()")
	}

	// Second shutdown is a no-op.
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error: %v", err)
	}
}
