// Package cache stores rendered resume artifacts.
//
// Exporting the same document with the same options always yields the same
// bytes, so the pipeline keys each artifact by a hash of the document and
// the render options and skips rendering on a hit.
//
// Backends:
//
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (the HTTP server)
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]. [NewScopedKeyer] prefixes every key, so several
// servers can share one Redis database.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Margin    float64 `json:"margin"`
	Scale     float64 `json:"scale,omitempty"`
	PhotoHash string  `json:"photo,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
