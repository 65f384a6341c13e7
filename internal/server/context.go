package server

import (
	"context"
	"sync"

	"github.com/tberndt/sheetfeed/internal/instrumentation"
	"github.com/tberndt/sheetfeed/internal/manager"
)

// ServerContext holds the shared state of a running MCP server: the
// authenticated manager, the instrumentation provider and the shutdown
// lifecycle. The manager is built eagerly; credentials are resolved before
// the context exists.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	manager  *manager.Manager
	provider *instrumentation.Provider
	readOnly bool
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext wraps the manager into a server context. readOnly blocks
// tools that write to spreadsheets or change Drive permissions.
func NewServerContext(ctx context.Context, mgr *manager.Manager, provider *instrumentation.Provider, readOnly bool) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		manager:  mgr,
		provider: provider,
		readOnly: readOnly,
	}
}

// Context returns the lifecycle context; it is cancelled on Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Manager returns the authenticated Drive/Sheets manager.
func (sc *ServerContext) Manager() *manager.Manager {
	return sc.manager
}

// Provider returns the instrumentation provider, which may be disabled but
// is never nil.
func (sc *ServerContext) Provider() *instrumentation.Provider {
	return sc.provider
}

// Metrics returns the metrics recorder.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.provider == nil {
		return &instrumentation.Metrics{}
	}
	return sc.provider.Metrics()
}

// ReadOnly reports whether write tools are blocked.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the lifecycle context. Safe to call more than once.
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
