// Package cache provides byte caches for fetched series data.
//
// # Overview
//
// Remote data sources (HTTP endpoints) are slow and rate limited, so the
// raw response bodies they return are cached per dataset and year. Three
// implementations share the [Cache] interface:
//
//   - [FileCache]: one file per entry under ~/.cache/heatcal (CLI)
//   - [RedisCache]: entries stored as Redis strings with native TTL (server)
//   - [NullCache]: never stores anything (backend = "none")
//
// Only source payloads are cached. Scenes are rebuilt on every render.
//
// # Keys
//
// A [Keyer] derives stable keys. With the redis backend they go through a
// [ScopedKeyer] using the configured prefix, so cache entries never collide
// with the hashes redis datasets read:
//
//	k := cache.NewScopedKeyer(nil, "heatcal:cache:")
//	key := k.HTTPKey("series", "https://example.com/runs/2024.json")
//
// Every Get and Set reports to [observability.Cache].
//
// [observability.Cache]: github.com/matzehuels/heatcal/pkg/observability.Cache
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional time-to-live.
// A TTL of zero means the entry never expires.
type Cache interface {
	// Get returns the payload for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
