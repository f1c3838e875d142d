// Package pipeline provides the core layout pipeline for lamp.
//
// This package implements the complete parse → layout → render pipeline
// that is shared by the CLI and the HTTP server. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read netlist source and build the component/net model
//  2. Layout: Classify topology, place components, and route wires
//  3. Render: Generate output in various formats (SVG, plot, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    NetlistPath: "rc_lowpass.cir",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	n, src, err := runner.Parse(ctx, opts)
//
//	// Layout with existing netlist
//	res, err := runner.GenerateLayout(ctx, n, netlistHash, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, res, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	lamperrors "github.com/Naivedya-sahu/lamp-v2/pkg/errors"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
	"github.com/Naivedya-sahu/lamp-v2/pkg/render/plot"
	"github.com/Naivedya-sahu/lamp-v2/pkg/symbols"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultPadding is the default whitespace around SVG drawings, in canvas
// units. It matches the svg renderer's built-in default so a zero
// Options.Padding and an explicit DefaultPadding produce the same drawing.
const DefaultPadding = 50.0

// Format constants for layout artifacts.
const (
	FormatSVG  = "svg"
	FormatPlot = "plot"
	FormatJSON = "json"
)

// Graph format constants for connectivity graph artifacts.
const (
	GraphFormatDOT = "dot"
	GraphFormatSVG = "svg"
	GraphFormatPNG = "png"
)

// ValidFormats is the set of supported layout artifact formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPlot: true,
	FormatJSON: true,
}

// ValidGraphFormats is the set of supported connectivity graph formats.
var ValidGraphFormats = map[string]bool{
	GraphFormatDOT: true,
	GraphFormatSVG: true,
	GraphFormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Netlist     string `json:"netlist,omitempty"`      // inline netlist source
	NetlistPath string `json:"netlist_path,omitempty"` // path to a netlist file
	Refresh     bool   `json:"refresh,omitempty"`      // bypass the cache for this run

	// Layout options
	Layout      layout.Config `json:"layout,omitempty"`
	SymbolsPath string        `json:"symbols_path,omitempty"` // TOML overlay for symbol geometry

	// Render options
	Formats   []string    `json:"formats,omitempty"`
	NoLabels  bool        `json:"no_labels,omitempty"`   // omit reference/value labels in SVG
	NoPinDots bool        `json:"no_pin_dots,omitempty"` // omit pin markers in SVG
	Padding   float64     `json:"padding,omitempty"`     // SVG padding in canvas units
	Device    plot.Device `json:"device,omitempty"`      // plot target geometry
	Detailed  bool        `json:"detailed,omitempty"`    // include values in graph output

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Library *symbols.Library `json:"-"` // symbol library override; wins over SymbolsPath

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run.
	RunID string

	// Netlist is the parsed netlist.
	Netlist *circuit.Netlist

	// NetlistHash is the content hash of the netlist source.
	NetlistHash string

	// Layout is the placed and routed layout.
	Layout *layout.Result

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount  int
	NetCount        int
	WireCount       int
	DiagnosticCount int
	ParseTime       time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Parsing is pure
// local text processing and is never cached.
type CacheInfo struct {
	LayoutHit bool // Whether the layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a layout artifact format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return lamperrors.New(lamperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, plot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGraphFormat checks that a connectivity graph format is valid.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return lamperrors.New(lamperrors.ErrCodeInvalidFormat,
			"invalid graph format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ensureLogger fills in a discarding logger so stage code can log
// unconditionally.
func (o *Options) ensureLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Netlist == "" && o.NetlistPath == "" {
		return lamperrors.New(lamperrors.ErrCodeInvalidInput, "netlist or netlist_path is required")
	}
	o.ensureLogger()
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := o.Layout.ValidateAndSetDefaults(); err != nil {
		return lamperrors.Wrap(lamperrors.ErrCodeInvalidConfig, err, "layout config")
	}
	o.ensureLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	o.ensureLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Device.ValidateAndSetDefaults(); err != nil {
		return lamperrors.Wrap(lamperrors.ErrCodeInvalidConfig, err, "plot device")
	}
	return nil
}

// SourceName returns a short name for the netlist source, used in logs
// and instrumentation. Inline source has no path and reports as "<inline>".
func (o *Options) SourceName() string {
	if o.NetlistPath != "" {
		return o.NetlistPath
	}
	return "<inline>"
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SpacingH:   o.Layout.SpacingH,
		SpacingV:   o.Layout.SpacingV,
		RailHeight: o.Layout.RailHeight,
		CellSize:   o.Layout.Routing.CellSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Device.Width,
		Height:   o.Device.Height,
		Margin:   o.Device.Margin,
		MaxScale: o.Device.MaxScale,
		Labels:   !o.NoLabels,
		PinDots:  !o.NoPinDots,
		Padding:  o.Padding,
	}
}

// GraphKeyOpts returns cache key options for connectivity graph rendering.
func (o *Options) GraphKeyOpts(format string) cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
