// Package cache provides content-addressed caching for pipeline results.
//
// The pipeline caches at two natural boundaries: layout results keyed by
// the netlist source hash plus placement options, and rendered artifacts
// keyed by the layout hash plus render options. Because keys are derived
// from content hashes, a cache never serves stale data; entries only ever
// expire, they cannot be wrong.
//
// Three backends implement the Cache interface:
//   - FileCache: sharded JSON files under a directory, for CLI usage
//   - RedisCache: shared cache for serve mode
//   - NullCache: disables caching
//
// Key construction is separated into the Keyer interface so serve mode can
// namespace keys per deployment with ScopedKeyer without touching the
// backends.
package cache

import (
	"context"
	"time"
)

// Default TTLs per key family. Content-hash keys cannot go stale, so
// these only bound cache growth.
const (
	// TTLLayout is the retention for computed layout results.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is the retention for rendered artifacts. Artifacts are
	// larger and cheap to regenerate from a cached layout.
	TTLArtifact = 14 * 24 * time.Hour

	// TTLGraph is the retention for rendered connectivity graphs.
	TTLGraph = 14 * 24 * time.Hour
)

// Cache is a byte-oriented cache with optional per-entry expiry.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// An error return means the backend failed, not that the key was absent;
// callers typically log it and continue as if it were a miss.
type Cache interface {
	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache. A non-positive ttl stores the
	// entry without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
