package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/tickdone/ticktick-mcp/internal/instrumentation"
	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

// ServerContext holds the shared state for the MCP server: the TickTick
// client all tools talk through, the write-protection mode, and the
// shutdown lifecycle.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   *ticktick.Client
	readOnly bool
	metrics  *instrumentation.Metrics
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context around an existing client
func NewServerContext(ctx context.Context, client *ticktick.Client, readOnly bool) (*ServerContext, error) {
	if client == nil {
		return nil, fmt.Errorf("ticktick client is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		client:   client,
		readOnly: readOnly,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the TickTick client
func (sc *ServerContext) Client() *ticktick.Client {
	return sc.client
}

// ReadOnly returns whether write tools are disabled
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// SetMetrics attaches a metrics recorder. Called once during startup,
// before any tool handler runs.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is off
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
