package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
	"github.com/Naivedya-sahu/lamp-v2/pkg/lio"
	"github.com/Naivedya-sahu/lamp-v2/pkg/observability"
)

// Runner executes pipeline stages with caching in front of the
// expensive ones. The CLI and the HTTP server share one implementation
// so cache keys and hit semantics cannot drift between the surfaces.
//
// A Runner holds no per-run state; one instance serves concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. Nil arguments select the defaults: a
// NullCache, the DefaultKeyer, and the package default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs parse, layout, and render in order, filling in run
// metadata, stage timings, and cache hit flags along the way.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	parseStart := time.Now()
	n, src, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Netlist = n
	result.NetlistHash = cache.Hash([]byte(src))
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ComponentCount = len(n.Components)
	result.Stats.NetCount = len(n.Nets)
	r.Logger.Info("parsed netlist",
		"source", opts.SourceName(),
		"components", len(n.Components),
		"nets", len(n.Nets),
		"duration", result.Stats.ParseTime)

	layoutStart := time.Now()
	res, layoutHit, err := r.LayoutWithCacheInfo(ctx, n, result.NetlistHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.WireCount = len(res.Wires)
	result.Stats.DiagnosticCount = len(res.Diagnostics)
	if data, err := lio.Marshal(res); err == nil {
		result.LayoutHash = cache.Hash(data)
	}
	r.Logger.Info("computed layout",
		"topology", res.Topology,
		"components", len(res.Components),
		"wires", len(res.Wires),
		"duration", result.Stats.LayoutTime)
	if len(res.Diagnostics) > 0 {
		r.Logger.Warn("layout degraded", "diagnostics", len(res.Diagnostics))
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse reads and parses the netlist from options. It returns the
// netlist and the raw source text used for cache key derivation.
// Parsing is pure local text processing, so there is no cached variant.
func (r *Runner) Parse(ctx context.Context, opts Options) (*circuit.Netlist, string, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnParseStart(ctx, opts.SourceName())
	start := time.Now()

	n, src, err := Parse(opts)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, opts.SourceName(), 0, 0, time.Since(start), err)
		return nil, "", err
	}

	observability.Pipeline().OnParseComplete(ctx, opts.SourceName(), len(n.Components), len(n.Nets), time.Since(start), nil)
	return n, src, nil
}

// LayoutWithCacheInfo computes a layout, consulting the cache first.
// The bool result reports whether the layout came from the cache.
// netlistHash is the content hash of the netlist source as produced by
// cache.Hash; it anchors the cache key.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, n *circuit.Netlist, netlistHash string, opts Options) (*layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	key := r.Keyer.LayoutKey(netlistHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		// An entry that no longer deserializes counts as a miss and is
		// recomputed below.
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := lio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Pipeline().OnLayoutStart(ctx, len(n.Components))
	start := time.Now()

	res, err := GenerateLayout(n, opts)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, "", 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Pipeline().OnLayoutComplete(ctx, string(res.Topology), len(res.Wires), time.Since(start), nil)

	if !opts.Refresh {
		if data, err := lio.Marshal(res); err == nil {
			r.store(ctx, key, "layout", data, cache.TTLLayout)
		}
	}

	return res, false, nil
}

// GenerateLayout calls LayoutWithCacheInfo and discards the hit flag.
func (r *Runner) GenerateLayout(ctx context.Context, n *circuit.Netlist, netlistHash string, opts Options) (*layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, n, netlistHash, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts for every requested format,
// consulting the cache first. The artifact cache is all-or-nothing: a
// single absent format forces a full re-render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := lio.Marshal(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, layoutHash, opts); ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := RenderFromLayout(res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			r.store(ctx, key, "artifact", data, cache.TTLArtifact)
		}
	}

	return rendered, false, nil
}

// Render calls RenderWithCacheInfo and discards the hit flag.
func (r *Runner) Render(ctx context.Context, res *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// cachedArtifacts collects the cached artifact for every requested
// format. It reports false as soon as any format is absent.
func (r *Runner) cachedArtifacts(ctx context.Context, layoutHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// GraphWithCacheInfo renders the connectivity graph, consulting the
// cache first. netlistHash anchors the cache key, matching
// LayoutWithCacheInfo.
func (r *Runner) GraphWithCacheInfo(ctx context.Context, n *circuit.Netlist, netlistHash, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateGraphFormat(format); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	key := r.Keyer.GraphKey(netlistHash, opts.GraphKeyOpts(format))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "graph")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	data, err := RenderGraph(n, format, opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		r.store(ctx, key, "graph", data, cache.TTLGraph)
	}

	return data, false, nil
}

// Graph calls GraphWithCacheInfo and discards the hit flag.
func (r *Runner) Graph(ctx context.Context, n *circuit.Netlist, netlistHash, format string, opts Options) ([]byte, error) {
	data, _, err := r.GraphWithCacheInfo(ctx, n, netlistHash, format, opts)
	return data, err
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// store writes one cache entry and emits the set event when the write
// sticks.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
