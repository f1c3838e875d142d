package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON files under a root directory, sharded
// by key hash so no single directory grows unbounded. It backs the CLI,
// typically rooted at ~/.cache/lamp.
type FileCache struct {
	root string
}

// NewFileCache opens a file cache rooted at dir, creating the directory
// if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache root: %w", err)
	}
	return &FileCache{root: dir}, nil
}

// envelope is the on-disk entry format. Expires is unix nanoseconds;
// zero means the entry never expires.
type envelope struct {
	Payload []byte `json:"payload"`
	Expires int64  `json:"expires,omitempty"`
}

func (e envelope) stale(now time.Time) bool {
	return e.Expires != 0 && now.UnixNano() > e.Expires
}

// Get retrieves a value. Unreadable and expired entries are evicted and
// reported as misses, never as errors.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p := c.entryPath(key)
	raw, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e envelope
	if json.Unmarshal(raw, &e) != nil || e.stale(time.Now()) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Set stores a value. A non-positive ttl stores it without expiry. The
// entry lands in a temp file first and is renamed into place, so a crash
// mid-write cannot leave a torn entry behind.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := envelope{Payload: data}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl).UnixNano()
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	p := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".write-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Delete removes an entry. Missing keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; file entries need no teardown.
func (c *FileCache) Close() error { return nil }

// entryPath shards entries into subdirectories keyed by the first hash
// byte: <root>/ab/cdef....json.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.root, sum[:2], sum[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
