package cache

// LayoutKeyOpts carries the placement and routing options that affect a
// layout result. Two runs with the same netlist source but different
// options must not share a cache entry.
type LayoutKeyOpts struct {
	SpacingH   int
	SpacingV   int
	RailHeight int
	CellSize   int
}

// ArtifactKeyOpts carries the render options that affect an artifact.
// Device geometry matters for plot programs, labels and padding for SVG;
// hashing all of them keeps one key schema per family.
type ArtifactKeyOpts struct {
	Format   string
	Width    int
	Height   int
	Margin   int
	MaxScale float64
	Labels   bool
	PinDots  bool
	Padding  float64
}

// GraphKeyOpts carries the options for rendered connectivity graphs.
type GraphKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for the pipeline stages.
//
// Implementations must be deterministic: the same inputs always produce
// the same key, across processes and releases.
type Keyer interface {
	// LayoutKey generates a key for a layout result, from the netlist
	// source hash and the options the layout depends on.
	LayoutKey(netlistHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the
	// layout hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// GraphKey generates a key for a rendered connectivity graph, from
	// the netlist source hash and the graph render options.
	GraphKey(netlistHash string, opts GraphKeyOpts) string
}

// DefaultKeyer generates hashed, prefixed keys.
//
// Keys look like "layout:<sha256>"; the prefix makes key families easy to
// inspect and clear selectively in Redis.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a layout result.
func (k *DefaultKeyer) LayoutKey(netlistHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", netlistHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// GraphKey generates a key for a rendered connectivity graph.
func (k *DefaultKeyer) GraphKey(netlistHash string, opts GraphKeyOpts) string {
	return hashKey("graph", netlistHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
