package observability

import (
	"context"
	"time"
)

// PipelineHooks receives dataset load and scene render events.
type PipelineHooks interface {
	// One pair per dataset and year; days counts the days with a value.
	OnLoadStart(ctx context.Context, dataset string, year int)
	OnLoadComplete(ctx context.Context, dataset string, year int, days int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, year int, formats []string)
	OnRenderComplete(ctx context.Context, year int, formats []string, duration time.Duration, err error)
}

// CacheHooks receives lookups and writes of the dataset cache, labelled by
// backend ("file", "redis").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
}

// HTTPHooks receives requests made by HTTP datasets. OnError covers
// requests that got no response at all.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores every event. Embed it to implement only some.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string, int)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, int, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, int, []string, time.Duration, error)  {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}
