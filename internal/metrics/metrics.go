// Package metrics Prometheus 指标
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashwinyue/osint-framework/internal/service/catalog"
)

// Metrics 服务指标集合
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	favoriteOps     *prometheus.CounterVec
	catalogTools    prometheus.Gauge
	catalogDegraded prometheus.Gauge
	catalogReloads  prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// New 创建指标并注册到独立的 registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "osint_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route", "status"},
		),
		favoriteOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osint_favorite_operations_total",
				Help: "Total number of favorites mutations",
			},
			[]string{"op", "result"},
		),
		catalogTools: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "osint_catalog_tools",
				Help: "Number of tools in the current catalog snapshot",
			},
		),
		catalogDegraded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "osint_catalog_degraded",
				Help: "1 when the catalog is served from the built-in fallback",
			},
		),
		catalogReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "osint_catalog_reloads_total",
				Help: "Total number of catalog reloads",
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osint_response_cache_lookups_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "osint_rate_limited_requests_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}

// ObserveRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route, statusClass(status)).Observe(d.Seconds())
}

// ObserveFavoriteOp 记录一次收藏修改
func (m *Metrics) ObserveFavoriteOp(op string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.favoriteOps.WithLabelValues(op, result).Inc()
}

// SetCatalog 更新目录指标，初始加载时 reload 为 false
func (m *Metrics) SetCatalog(c *catalog.Catalog, reload bool) {
	m.catalogTools.Set(float64(c.Len()))
	if c.Degraded {
		m.catalogDegraded.Set(1)
	} else {
		m.catalogDegraded.Set(0)
	}
	if reload {
		m.catalogReloads.Inc()
	}
}

// ObserveCache 记录缓存命中情况
func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveRateLimited 记录一次被限流的请求
func (m *Metrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}

// Registry 指标 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
