// Package observability lets the CLI observe library packages without
// those packages depending on a metrics backend.
//
// [pipeline], [source], [cache] and [httputil] report events to the hooks
// returned by [Pipeline], [Cache] and [HTTP]. Until something is registered
// these are no-ops. `heatcal serve` registers a [Prometheus] for all three:
//
//	prom := observability.NewPrometheus(registry)
//	observability.SetPipelineHooks(prom)
//	observability.SetCacheHooks(prom)
//	observability.SetHTTPHooks(prom)
//
// [pipeline]: github.com/matzehuels/heatcal/pkg/pipeline
// [source]: github.com/matzehuels/heatcal/pkg/source
// [cache]: github.com/matzehuels/heatcal/pkg/cache
// [httputil]: github.com/matzehuels/heatcal/pkg/httputil
package observability
