// Package store provides persistence for pipeline runs.
//
// This package defines the Store interface for run storage, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Architecture
//
// A Run is the durable record of one pipeline execution: the netlist
// source it started from, the canonical layout JSON it produced, and the
// rendered SVG artifact. Storing the layout rather than re-deriving it
// keeps GET responses deterministic even across engine changes.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "lamp")
//
// Persist and retrieve runs:
//
//	if err := st.Put(ctx, run); err != nil {
//	    return err
//	}
//	run, err := st.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // Unknown run ID
//	}
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit bounds List results when the caller passes no limit.
const DefaultListLimit = 20

// Run is a persisted pipeline run.
//
// Layout holds the canonical layout JSON, embedded verbatim in API
// responses. SVG is served through its own endpoint, so it stays out of
// the JSON representation.
type Run struct {
	ID          string          `bson:"_id" json:"id"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
	Source      string          `bson:"source" json:"source"`
	NetlistHash string          `bson:"netlist_hash" json:"netlist_hash"`
	LayoutHash  string          `bson:"layout_hash" json:"layout_hash"`
	Topology    string          `bson:"topology" json:"topology"`
	Layout      json.RawMessage `bson:"layout" json:"layout,omitempty"`
	SVG         []byte          `bson:"svg,omitempty" json:"-"`
	Stats       RunStats        `bson:"stats" json:"stats"`
}

// RunStats summarizes a run for list views, so listings never need to
// decode the layout document.
type RunStats struct {
	Components  int `bson:"components" json:"components"`
	Nets        int `bson:"nets" json:"nets"`
	Wires       int `bson:"wires" json:"wires"`
	Diagnostics int `bson:"diagnostics" json:"diagnostics"`
}

// Store is the interface for run storage backends.
type Store interface {
	// Put persists a run. Writing an existing ID replaces the stored run.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs, newest first, up to limit.
	// A non-positive limit means DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
