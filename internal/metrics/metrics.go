package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"liquidityPortal/internal/stats"
)

// Metrics exposes pool stats and read health to Prometheus.
type Metrics struct {
	registry     *prometheus.Registry
	total        prometheus.Gauge
	reserved     prometheus.Gauge
	utilization  prometheus.Gauge
	readFailures *prometheus.CounterVec
	readDuration *prometheus.HistogramVec
}

// New registers the portal collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquidity_total_usd",
			Help: "Total pool liquidity in USD.",
		}),
		reserved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquidity_reserved_usd",
			Help: "Reserved pool liquidity in USD.",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquidity_utilization_percent",
			Help: "Reserved liquidity as a percentage of total liquidity.",
		}),
		readFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liquidity_read_failures_total",
			Help: "Failed pool contract reads by field.",
		}, []string{"field"}),
		readDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "liquidity_read_duration_seconds",
			Help:    "Pool contract read latency by field, including retries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"field"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.total,
		m.reserved,
		m.utilization,
		m.readFailures,
		m.readDuration,
	)
	return m
}

// ObserveRead records the latency and outcome of a contract read.
func (m *Metrics) ObserveRead(field string, elapsed time.Duration, err error) {
	m.readDuration.WithLabelValues(field).Observe(elapsed.Seconds())
	if err != nil {
		m.readFailures.WithLabelValues(field).Inc()
	}
}

// SetStats updates the stat gauges. Values that fail to parse are skipped.
func (m *Metrics) SetStats(d stats.Derived) {
	setGauge(m.total, d.Liquidity)
	setGauge(m.reserved, d.Reserved)
	setGauge(m.utilization, d.Utilization)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func setGauge(g prometheus.Gauge, value string) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return
	}
	f, _ := d.Float64()
	g.Set(f)
}
