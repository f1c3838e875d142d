package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data: 64 characters, the full
// 256 bits, so content-derived keys cannot realistically collide.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "<prefix>:<sha256>" over the JSON encoding of parts.
// Each part is encoded separately (the encoder's trailing newline keeps
// value boundaries in the digest), and encoding is deterministic for the
// plain option structs used as parts.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, part := range parts {
		_ = enc.Encode(part)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
