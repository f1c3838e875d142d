package route

import "errors"

// Default routing parameters.
const (
	// DefaultCellSize is the routing grid pitch in canvas units.
	DefaultCellSize = 10

	// DefaultObstaclePenalty is the extra cost for entering a blocked
	// cell. Obstacles are soft: always traversable at a price, so the
	// search terminates even when a pin sits inside its own component's
	// rasterized footprint.
	DefaultObstaclePenalty = 100.0

	// DefaultTurnPenalty is the extra cost when a move changes
	// direction. It biases paths toward fewer, longer straight runs; it
	// is a tie-break for visual cleanliness, not a length optimization.
	DefaultTurnPenalty = 0.5

	// DefaultExpansionFactor bounds A* work: the search aborts after
	// factor x grid-cell-count node expansions and the net falls back
	// to an L-shaped path.
	DefaultExpansionFactor = 10

	// DefaultMergeEpsilon is the coincidence tolerance when deduplicating
	// consecutive waypoints, in canvas units.
	DefaultMergeEpsilon = 0.1
)

var (
	// ErrInvalidCellSize is returned by [Config.ValidateAndSetDefaults]
	// when the cell size is negative.
	ErrInvalidCellSize = errors.New("cell size must be positive")

	// ErrInvalidPenalty is returned when a cost penalty is negative.
	ErrInvalidPenalty = errors.New("penalties must be non-negative")
)

// Config holds the routing parameters. The zero value is usable after
// ValidateAndSetDefaults, which fills unset fields with the defaults
// above. Validation is idempotent.
type Config struct {
	CellSize        int     `json:"cell_size,omitempty" toml:"cell_size"`
	ObstaclePenalty float64 `json:"obstacle_penalty,omitempty" toml:"obstacle_penalty"`
	TurnPenalty     float64 `json:"turn_penalty,omitempty" toml:"turn_penalty"`
	ExpansionFactor int     `json:"expansion_factor,omitempty" toml:"expansion_factor"`
	MergeEpsilon    float64 `json:"merge_epsilon,omitempty" toml:"merge_epsilon"`
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// out-of-range values.
func (c *Config) ValidateAndSetDefaults() error {
	if c.CellSize < 0 {
		return ErrInvalidCellSize
	}
	if c.CellSize == 0 {
		c.CellSize = DefaultCellSize
	}
	if c.ObstaclePenalty < 0 || c.TurnPenalty < 0 {
		return ErrInvalidPenalty
	}
	if c.ObstaclePenalty == 0 {
		c.ObstaclePenalty = DefaultObstaclePenalty
	}
	if c.TurnPenalty == 0 {
		c.TurnPenalty = DefaultTurnPenalty
	}
	if c.ExpansionFactor <= 0 {
		c.ExpansionFactor = DefaultExpansionFactor
	}
	if c.MergeEpsilon <= 0 {
		c.MergeEpsilon = DefaultMergeEpsilon
	}
	return nil
}
