package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Store is a byte-oriented key/value cache with store-defined expiry.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
}

// Key derives a content hash from the JSON encoding of parts.
// Equal contents give equal keys regardless of where the values live in memory.
func Key(parts ...any) (string, error) {
	h := sha256.New()
	for i, p := range parts {
		raw, err := json.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("cache key part %d: %w", i, err)
		}
		h.Write(raw)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
