package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"welfared/internal/services"
	"welfared/internal/structures"
)

type MetricsProviderInterface interface {
	IncCheckins(outcome string)
	IncWatcherEvents()
	ObserveRenderDuration(format string, duration time.Duration)
	IncRenderFailures(format string)
	SetRosterSize(window string, count int)
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	checkinsTotal       *prometheus.CounterVec
	watcherEvents       prometheus.Counter
	renderDuration      *prometheus.HistogramVec
	renderFailures      *prometheus.CounterVec
	rosterSize          *prometheus.GaugeVec
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncCheckins(outcome string) {
	m.checkinsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncWatcherEvents() {
	m.watcherEvents.Inc()
}

func (m *MetricsProvider) ObserveRenderDuration(format string, duration time.Duration) {
	m.renderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRenderFailures(format string) {
	m.renderFailures.WithLabelValues(format).Inc()
}

func (m *MetricsProvider) SetRosterSize(window string, count int) {
	m.rosterSize.WithLabelValues(window).Set(float64(count))
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.AggregatorServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		checkinsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "welfared_checkins_total",
			Help: "Processed check-in files by pipeline outcome",
		}, []string{"outcome"}),

		watcherEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "welfared_watcher_events_total",
			Help: "Filesystem events observed in the input directory",
		}),

		renderDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "welfared_render_duration_seconds",
			Help:    "Output rendering duration by format",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),

		renderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "welfared_render_failures_total",
			Help: "Output rendering failures by format",
		}, []string{"format"}),

		rosterSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "welfared_roster_size",
			Help: "Live check-ins per window instance",
		}, []string{"window"}),

		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "welfared_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "welfared_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "welfared_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "welfared_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "welfared_persistence_duration_seconds",
			Help:    "Duration of roster snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "welfared_windows_total",
		Help: "Window instances currently held in the roster",
	}, func() float64 {
		return float64(len(service.WindowKeys()))
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncCheckins(_ string)                              {}
func (n *noopMetrics) IncWatcherEvents()                                 {}
func (n *noopMetrics) ObserveRenderDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncRenderFailures(_ string)                        {}
func (n *noopMetrics) SetRosterSize(_ string, _ int)                     {}
func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
