package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxNetlistBytes bounds accepted netlist source size. A schematic netlist
// is a few kilobytes; anything near this limit is not a netlist.
const MaxNetlistBytes = 1 << 20

// ValidateNetlistSource validates raw netlist text received from an
// untrusted boundary (HTTP request body, stdin) before it reaches the
// parser.
//
// The validation rules are intentionally conservative:
//   - No empty input
//   - No null bytes
//   - No control characters other than tab, newline, carriage return
//   - Maximum size of MaxNetlistBytes
//
// Syntax validation is the parser's job; this only rejects input that is
// clearly not netlist text.
func ValidateNetlistSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidNetlist, "netlist source cannot be empty")
	}

	if len(src) > MaxNetlistBytes {
		return New(ErrCodeInvalidNetlist, "netlist source too large (max %d bytes)", MaxNetlistBytes)
	}

	for _, r := range src {
		if r == '\x00' {
			return New(ErrCodeInvalidNetlist, "netlist source contains null bytes")
		}
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return New(ErrCodeInvalidNetlist, "netlist source contains control characters")
		}
	}

	return nil
}

// renderFormats lists the artifact formats the render surfaces accept.
var renderFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"dot":  true,
	"json": true,
	"plot": true,
}

// ValidateFormat validates a render format name from a CLI flag or query
// parameter.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if !renderFormats[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q (supported: dot, json, plot, png, svg)", format)
	}

	return nil
}

// runIDRegex matches canonical lowercase UUID strings.
var runIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateRunID validates a run identifier from a URL path segment. Run
// IDs are UUIDs assigned by the pipeline; anything else is rejected before
// it reaches the store.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRunID, "run id cannot be empty")
	}

	if !runIDRegex.MatchString(id) {
		return New(ErrCodeInvalidRunID, "invalid run id %q", id)
	}

	return nil
}
