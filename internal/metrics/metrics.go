package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "compare"

// Metrics holds the collectors for one process. Collectors live on their own
// registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	resolveTotal       *prometheus.CounterVec
	resolveDuration    prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
	cacheWriteFailures prometheus.Counter
	storeBatchSize     prometheus.Histogram
	storeDuration      *prometheus.HistogramVec
	httpDuration       *prometheus.HistogramVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		resolveTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "requests_total",
			Help:      "Comparison resolutions by outcome",
		}, []string{"outcome"}),
		resolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Time taken to resolve a comparison",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Item cache lookups by result",
		}, []string{"result"}),
		cacheWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "write_failures_total",
			Help:      "Item cache writes that failed and were ignored",
		}),
		storeBatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "batch_size",
			Help:      "Number of ids per store batch lookup",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		storeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "duration_seconds",
			Help:      "Time taken by store batch lookups",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status code",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CacheProbed(hits, misses int) {
	m.cacheLookups.WithLabelValues("hit").Add(float64(hits))
	m.cacheLookups.WithLabelValues("miss").Add(float64(misses))
}

func (m *Metrics) StoreLoaded(batchSize int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.storeBatchSize.Observe(float64(batchSize))
	m.storeDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheWriteFailed() {
	m.cacheWriteFailures.Inc()
}

func (m *Metrics) Resolved(outcome string, elapsed time.Duration) {
	m.resolveTotal.WithLabelValues(outcome).Inc()
	m.resolveDuration.Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route string, code int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// RegisterCacheEntries exposes the current cache size as a gauge.
func (m *Metrics) RegisterCacheEntries(driver string, entries func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "cache",
		Name:        "entries",
		Help:        "Entries currently held by the item cache",
		ConstLabels: prometheus.Labels{"driver": driver},
	}, entries)
}
