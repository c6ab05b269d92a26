// Package cache stores prepared image payloads between runs.
//
// Decoding and re-encoding a PNG for the PDF writer is the slowest part of a
// sheet run, and card decks are rebuilt over and over while tweaking the
// layout. Payloads are keyed by the SHA-256 of the source file plus the
// preparation options, so an edited image never hits a stale entry.
//
// Two backends exist: [FileCache] for the CLI, persisted under the user
// cache directory, and [NullCache] for --no-cache and tests.
package cache

import (
	"context"
	"time"
)

// TTLImage is how long a prepared image payload stays valid.
const TTLImage = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired and corrupt entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// ImageKeyOpts holds the options that change a prepared payload.
type ImageKeyOpts struct {
	Format string `json:"format"` // payload format handed to the PDF writer
}

// Keyer derives cache keys.
type Keyer interface {
	// ImageKey returns the key of the payload prepared from a file whose
	// content hashes to contentHash.
	ImageKey(contentHash string, opts ImageKeyOpts) string
}

// DefaultKeyer builds keys of the form "image:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ImageKey implements Keyer.
func (DefaultKeyer) ImageKey(contentHash string, opts ImageKeyOpts) string {
	return hashKey("image", contentHash, opts)
}
