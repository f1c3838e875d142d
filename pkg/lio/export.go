package lio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
)

// WriteJSON encodes a layout result as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(res *layout.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a layout result to a JSON file at path.
func ExportJSON(res *layout.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Marshal returns the indented JSON encoding of a layout result. The
// pipeline uses this for cache entries and HTTP responses where no
// io.Writer is at hand.
func Marshal(res *layout.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}
