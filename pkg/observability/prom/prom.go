// Package prom implements the observability hooks on top of Prometheus.
//
// A [Metrics] value owns its own registry, so several instances (tests, or a
// CLI and an embedded server) never collide on the default global registry.
//
//	m := prom.New("applyviz")
//	m.Install()
//	http.Handle("/metrics", m.Handler())
package prom

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/applyviz/pkg/observability"
)

// Metrics records pipeline, cache and HTTP events.
type Metrics struct {
	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	LoadWarnings  prometheus.Counter
	LayoutSize    *prometheus.HistogramVec

	CacheLookups *prometheus.CounterVec
	CacheWrites  *prometheus.CounterVec
	CacheBytes   *prometheus.CounterVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPResponseSize     *prometheus.HistogramVec
	HTTPErrors           *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance whose metric names start with namespace.
// Go runtime and process collectors are registered as well.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		StageTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_total",
			Help:      "Pipeline stage executions by stage and status",
		}, []string{"stage", "status"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Pipeline stage latency in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"stage"}),
		LoadWarnings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_warnings_total",
			Help:      "Data-shape warnings raised while loading statistics",
		}),
		LayoutSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_elements",
			Help:      "Interactive elements per computed layout",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}, []string{"view"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by key type and result",
		}, []string{"type", "result"}),
		CacheWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Cache writes by key type",
		}, []string{"type"}),
		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"type"}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		}),
		HTTPResponseSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		}, []string{"method", "route"}),
		HTTPErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Requests answered with an error response",
		}, []string{"method", "route"}),

		registry: reg,
	}
}

// Install registers m as the global pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(pipelineHooks{m})
	observability.SetCacheHooks(cacheHooks{m})
	observability.SetHTTPHooks(httpHooks{m})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) stage(name string, d time.Duration, err error) {
	m.StageTotal.WithLabelValues(name, status(err)).Inc()
	m.StageDuration.WithLabelValues(name).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

type pipelineHooks struct{ m *Metrics }

func (pipelineHooks) OnLoadStart(context.Context, string) {}

func (h pipelineHooks) OnLoadComplete(_ context.Context, _ string, warnings int, d time.Duration, err error) {
	h.m.stage("load", d, err)
	h.m.LoadWarnings.Add(float64(warnings))
}

func (pipelineHooks) OnLayoutStart(context.Context, string) {}

func (h pipelineHooks) OnLayoutComplete(_ context.Context, view string, elements int, d time.Duration) {
	h.m.stage("layout", d, nil)
	h.m.LayoutSize.WithLabelValues(view).Observe(float64(elements))
}

func (pipelineHooks) OnRenderStart(context.Context, []string) {}

func (h pipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.m.stage("render:"+strings.Join(formats, "+"), d, err)
}

type cacheHooks struct{ m *Metrics }

func (h cacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.m.CacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (h cacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.m.CacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (h cacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.m.CacheWrites.WithLabelValues(keyType).Inc()
	h.m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

type httpHooks struct{ m *Metrics }

func (h httpHooks) OnRequest(context.Context, string, string) {
	h.m.HTTPRequestsInFlight.Inc()
}

func (h httpHooks) OnResponse(_ context.Context, method, route string, code, size int, d time.Duration) {
	h.m.HTTPRequestsInFlight.Dec()
	h.m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	h.m.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
}

func (h httpHooks) OnError(_ context.Context, method, route string, _ error) {
	h.m.HTTPErrors.WithLabelValues(method, route).Inc()
}

var (
	_ observability.PipelineHooks = pipelineHooks{}
	_ observability.CacheHooks    = cacheHooks{}
	_ observability.HTTPHooks     = httpHooks{}
)
