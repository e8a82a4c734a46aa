package observability

import "sync/atomic"

// slot holds the registered hooks of one kind. Reads are lock-free since
// every dataset load and cache lookup goes through one.
type slot[T any] struct {
	noop T
	cur  atomic.Pointer[T]
}

func (s *slot[T]) load() T {
	if p := s.cur.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) store(h T) {
	if any(h) != nil {
		s.cur.Store(&h)
	}
}

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks registers h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.store(h) }

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.store(h) }

// SetHTTPHooks registers h for HTTP client events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.store(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineSlot.cur.Store(nil)
	cacheSlot.cur.Store(nil)
	httpSlot.cur.Store(nil)
}
