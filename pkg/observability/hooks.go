// Package observability provides hooks for metrics and tracing.
//
// The pipeline, cache, and HTTP server emit events through package-level
// hook interfaces with no-op defaults. An application that wants
// instrumentation registers its own implementations once at startup;
// libraries never import an observability backend directly, so the hook
// boundary stays free of OpenTelemetry, Prometheus, or vendor SDKs.
//
// # Usage
//
// Register hooks before any pipeline work starts:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries emit events through the accessors:
//
//	observability.Pipeline().OnLayoutStart(ctx, componentCount)
//	// ... place components and route wires ...
//	observability.Pipeline().OnLayoutComplete(ctx, topology, wireCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ====== Hook interfaces ======

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, componentCount, netCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, componentCount int)
	OnLayoutComplete(ctx context.Context, topology string, wireCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives hit, miss, and write events from cache
// operations. keyType names the cached stage (layout, artifact, graph).
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP serve surface.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// ====== No-op defaults ======

// NoopPipelineHooks discards all pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string) {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks discards all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks discards all server events.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopServerHooks) OnError(context.Context, string, string, error)                 {}

// ====== Registry ======

// hookSet is the full set of registered hooks, swapped as a unit by
// Reset and guarded by mu.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

func defaultHooks() hookSet {
	return hookSet{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		server:   NoopServerHooks{},
	}
}

var (
	mu     sync.RWMutex
	active = defaultHooks()
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored so callers
// can pass an optional value through unchecked.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	mu.Lock()
	active.pipeline = h
	mu.Unlock()
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	mu.Lock()
	active.cache = h
	mu.Unlock()
}

// SetServerHooks registers server hooks. Nil is ignored.
func SetServerHooks(h ServerHooks) {
	if h == nil {
		return
	}
	mu.Lock()
	active.server = h
	mu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return active.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return active.cache
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	mu.RLock()
	defer mu.RUnlock()
	return active.server
}

// Reset restores the no-op defaults. Tests use it to undo registration.
func Reset() {
	mu.Lock()
	active = defaultHooks()
	mu.Unlock()
}
