package lio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
)

// ReadJSON decodes a layout result from r.
//
// The decoded result is validated against the invariants the engine
// guarantees of its own output:
//   - component references are unique and non-empty
//   - rotations are one of 0, 90, 180, 270
//   - wire paths are orthogonal polylines with no duplicate or collinear
//     consecutive points
//
// The type tag of each component is re-resolved to the closed enum;
// unrecognized tags import as Unknown, matching how the engine treats
// them. The returned result is independent of r and can be modified
// safely after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*layout.Result, error) {
	var res layout.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(res.Components))
	for i := range res.Components {
		pc := &res.Components[i]
		if pc.Ref == "" {
			return nil, fmt.Errorf("component %d: empty ref", i)
		}
		if seen[pc.Ref] {
			return nil, fmt.Errorf("component %s: duplicate ref", pc.Ref)
		}
		seen[pc.Ref] = true
		if !pc.Rotation.Valid() {
			return nil, fmt.Errorf("component %s: invalid rotation %d", pc.Ref, pc.Rotation)
		}
		pc.Type = circuit.ParseType(pc.Tag)
	}

	for i := range res.Wires {
		if err := res.Wires[i].Validate(); err != nil {
			return nil, fmt.Errorf("wire %d (net %s): %w", i, res.Wires[i].Net, err)
		}
	}

	return &res, nil
}

// ImportJSON reads a JSON file at path and returns the decoded layout
// result.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*layout.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return res, nil
}
