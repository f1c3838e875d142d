package layout

import (
	"errors"

	"github.com/Naivedya-sahu/lamp-v2/pkg/route"
)

// Default placement spacing, in canvas units.
const (
	// DefaultSpacingH is the horizontal pitch between chain members.
	DefaultSpacingH = 250

	// DefaultSpacingV is the vertical pitch between stacked components
	// and the drop from a rail to a ground symbol.
	DefaultSpacingV = 200

	// DefaultRailHeight is the y coordinate of the main horizontal rail.
	DefaultRailHeight = 150
)

// ErrInvalidSpacing is returned by [Config.ValidateAndSetDefaults] when
// a spacing constant is negative.
var ErrInvalidSpacing = errors.New("spacing constants must be positive")

// Config holds the placement constants and the routing parameters.
// The zero value is usable after ValidateAndSetDefaults.
type Config struct {
	SpacingH   int          `json:"spacing_h,omitempty" toml:"spacing_h"`
	SpacingV   int          `json:"spacing_v,omitempty" toml:"spacing_v"`
	RailHeight int          `json:"rail_height,omitempty" toml:"rail_height"`
	Routing    route.Config `json:"routing,omitempty" toml:"routing"`
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// out-of-range values, including the embedded routing config.
func (c *Config) ValidateAndSetDefaults() error {
	if c.SpacingH < 0 || c.SpacingV < 0 || c.RailHeight < 0 {
		return ErrInvalidSpacing
	}
	if c.SpacingH == 0 {
		c.SpacingH = DefaultSpacingH
	}
	if c.SpacingV == 0 {
		c.SpacingV = DefaultSpacingV
	}
	if c.RailHeight == 0 {
		c.RailHeight = DefaultRailHeight
	}
	return c.Routing.ValidateAndSetDefaults()
}
