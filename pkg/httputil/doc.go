// Package httputil provides the HTTP client used by remote data sources.
//
// # Overview
//
//   - [Client]: GET with caching, retry and observability hooks
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Client.Fetch] stores raw response bodies in a [cache.Cache] keyed by
// namespace and URL, with the TTL given to [NewClient]. Bodies are cached
// before decoding so a format change in the consumer never poisons the cache.
//
//	c := httputil.NewClient(fileCache, "runs", 24*time.Hour, nil)
//	body, err := c.Fetch(ctx, "https://example.com/runs/2024.json", false)
//
// # Retry
//
// [Retry] re-runs an operation for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped in [RetryableError] are retried. The delay doubles
// after each attempt and honours a Retry-After header, capped at 30s.
// Clients default to 3 attempts starting at 1 second.
//
// [cache.Cache]: github.com/matzehuels/heatcal/pkg/cache.Cache
package httputil
