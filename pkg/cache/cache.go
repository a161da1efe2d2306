// Package cache provides caching for rendered evidence artifacts.
//
// Rendering a full evidence set (tile, heatmap, super-resolved variant,
// comparison) is deterministic, so identical inputs always produce
// identical bytes; the cache simply avoids recomputing per-pixel passes
// that have already run. Keys are derived from the exact inputs that
// determine artifact bytes (coordinate key, size, verdict, thermal seed),
// so a hit is always byte-equivalent to a recompute.
//
// Three backends are provided:
//   - FileCache: filesystem-backed, for the CLI
//   - MemoryCache: process-local, for the API server and tests
//   - RedisCache: shared, for multi-instance deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached object class. Synthetic artifacts never go
// stale, but bounded TTLs keep cache directories from growing forever.
const (
	TTLTile     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the minimal byte-oriented cache interface.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TileKeyOpts are the inputs that determine base tile bytes.
type TileKeyOpts struct {
	Width  int
	Height int
}

// ArtifactKeyOpts are the inputs that determine a final artifact's bytes.
type ArtifactKeyOpts struct {
	Kind        string // "heatmap", "superres", "comparison"
	Verdict     string
	ThermalSeed uint64
	Scale       int
	Alpha       float64
}

// Keyer generates cache keys for the evidence pipeline stages.
type Keyer interface {
	// TileKey keys a base satellite tile by coordinate key and size.
	TileKey(coordKey string, opts TileKeyOpts) string

	// ArtifactKey keys a derived artifact by tile hash and render options.
	ArtifactKey(tileHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TileKey generates a key for base tile caching.
func (k *DefaultKeyer) TileKey(coordKey string, opts TileKeyOpts) string {
	return hashKey("tile", coordKey, opts)
}

// ArtifactKey generates a key for derived artifact caching.
func (k *DefaultKeyer) ArtifactKey(tileHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tileHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation,
// keeping tenants' artifact namespaces separate on shared backends.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TileKey generates a prefixed tile key.
func (k *ScopedKeyer) TileKey(coordKey string, opts TileKeyOpts) string {
	return k.prefix + k.inner.TileKey(coordKey, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(tileHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tileHash, opts)
}
