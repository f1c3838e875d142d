// Package symbols is the component type library: per-category footprints
// and relative pin offsets consumed by placement and pin resolution.
//
// A built-in library covers every known category. TOML overlay files can
// replace or extend entries, which is how device-specific symbol sets are
// swapped in without touching the engine. Lookups never fail hard: a
// missing entry reports ok=false and the layout engine degrades that
// component to a diagnostic.
package symbols

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// TypeDef describes one component category's symbol: the body footprint
// at rotation 0 and the ordered pin offsets relative to the anchor.
// Dimensions and offsets are integers so rotated pin positions stay exact.
type TypeDef struct {
	Width  int              `toml:"width"`
	Height int              `toml:"height"`
	Pins   []circuit.Offset `toml:"-"`
}

// PinCount returns the number of pins the symbol defines.
func (d TypeDef) PinCount() int { return len(d.Pins) }

// Library maps component categories to their symbol definitions.
type Library struct {
	defs map[circuit.Type]TypeDef
}

// Default returns the built-in library.
//
// Two-terminal symbols are drawn horizontally with pin 1 on the left
// body edge and pin 2 on the right, so a chain reads left to right in
// node order. Sources put pin 1 (the driving terminal) on the right,
// facing the chain, and pin 2 on the left. Ground has a single pin
// centered on its top edge.
func Default() *Library {
	return &Library{defs: map[circuit.Type]TypeDef{
		circuit.Resistor:      {Width: 80, Height: 30, Pins: pins2(40)},
		circuit.Inductor:      {Width: 80, Height: 30, Pins: pins2(40)},
		circuit.Capacitor:     {Width: 40, Height: 60, Pins: pins2(20)},
		circuit.Diode:         {Width: 60, Height: 40, Pins: pins2(30)},
		circuit.ZenerDiode:    {Width: 60, Height: 40, Pins: pins2(30)},
		circuit.SourceDC:      {Width: 60, Height: 60, Pins: sourcePins(30)},
		circuit.SourceAC:      {Width: 60, Height: 60, Pins: sourcePins(30)},
		circuit.SourceCurrent: {Width: 60, Height: 60, Pins: sourcePins(30)},
		circuit.Ground:        {Width: 40, Height: 30, Pins: []circuit.Offset{{DX: 0, DY: -15}}},
	}}
}

// pins2 builds the horizontal two-pin pair (-dx, 0), (dx, 0).
func pins2(dx int) []circuit.Offset {
	return []circuit.Offset{{DX: -dx}, {DX: dx}}
}

// sourcePins builds the source pin pair with the driving terminal on
// the right edge.
func sourcePins(dx int) []circuit.Offset {
	return []circuit.Offset{{DX: dx}, {DX: -dx}}
}

// Lookup returns the definition for a category.
func (l *Library) Lookup(t circuit.Type) (TypeDef, bool) {
	d, ok := l.defs[t]
	return d, ok
}

// Set replaces or adds a definition.
func (l *Library) Set(t circuit.Type, def TypeDef) {
	l.defs[t] = def
}

// overlayFile mirrors the TOML overlay structure:
//
//	[types.R]
//	width = 80
//	height = 30
//	pins = [[-40, 0], [40, 0]]
type overlayFile struct {
	Types map[string]overlayDef `toml:"types"`
}

type overlayDef struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Pins   [][]int `toml:"pins"`
}

// LoadOverlay merges a TOML overlay file into the library.
// Entries keyed by unknown type tags are rejected rather than silently
// dropped, since a typo there would otherwise surface much later as an
// UnknownComponentType diagnostic.
func (l *Library) LoadOverlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open overlay %s: %w", path, err)
	}
	defer f.Close()
	if err := l.MergeTOML(f); err != nil {
		return fmt.Errorf("overlay %s: %w", path, err)
	}
	return nil
}

// MergeTOML merges TOML overlay data from r into the library.
func (l *Library) MergeTOML(r io.Reader) error {
	var file overlayFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	for tag, od := range file.Types {
		t := circuit.ParseType(tag)
		if t == circuit.Unknown {
			return fmt.Errorf("unknown type tag %q", tag)
		}
		def := TypeDef{Width: od.Width, Height: od.Height}
		if def.Width <= 0 || def.Height <= 0 {
			return fmt.Errorf("type %s: non-positive dimensions", tag)
		}
		for i, p := range od.Pins {
			if len(p) != 2 {
				return fmt.Errorf("type %s: pin %d must be [dx, dy]", tag, i)
			}
			def.Pins = append(def.Pins, circuit.Offset{DX: p[0], DY: p[1]})
		}
		if len(def.Pins) == 0 {
			return fmt.Errorf("type %s: no pins", tag)
		}
		l.defs[t] = def
	}
	return nil
}
