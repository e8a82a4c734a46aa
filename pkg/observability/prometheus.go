package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus records hook events as Prometheus metrics.
type Prometheus struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	loads          *prometheus.CounterVec
	loadDuration   *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// NewPrometheus creates the heatcal metrics and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatcal_renders_total",
			Help: "Scenes rendered, by output formats and result.",
		}, []string{"formats", "result"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatcal_render_duration_seconds",
			Help:    "Time spent serializing a scene.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"formats"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatcal_source_loads_total",
			Help: "Dataset loads, by dataset and result.",
		}, []string{"dataset", "result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatcal_source_load_duration_seconds",
			Help:    "Time spent loading one year of a dataset.",
			Buckets: prometheus.DefBuckets,
		}, []string{"dataset"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatcal_cache_events_total",
			Help: "Cache hits, misses and writes, by backend.",
		}, []string{"backend", "event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatcal_http_client_requests_total",
			Help: "Outgoing data source requests, by host and status.",
		}, []string{"host", "status"}),
	}
	reg.MustRegister(p.renders, p.renderDuration, p.loads, p.loadDuration, p.cacheEvents, p.httpRequests)
	return p
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnLoadStart(context.Context, string, int) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, dataset string, _ int, _ int, d time.Duration, err error) {
	p.loads.WithLabelValues(dataset, result(err)).Inc()
	p.loadDuration.WithLabelValues(dataset).Observe(d.Seconds())
}

func (p *Prometheus) OnRenderStart(context.Context, int, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ int, formats []string, d time.Duration, err error) {
	f := strings.Join(formats, ",")
	p.renders.WithLabelValues(f, result(err)).Inc()
	p.renderDuration.WithLabelValues(f).Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, backend string) {
	p.cacheEvents.WithLabelValues(backend, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, backend string) {
	p.cacheEvents.WithLabelValues(backend, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, backend string, _ int) {
	p.cacheEvents.WithLabelValues(backend, "set").Inc()
}

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, _, host, _ string, status int, _ time.Duration) {
	p.httpRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
}

func (p *Prometheus) OnError(_ context.Context, _, host, _ string, _ error) {
	p.httpRequests.WithLabelValues(host, "error").Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
