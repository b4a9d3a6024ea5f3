package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the fetch and the screen.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec // labels: outcome={ok,malformed_url,network,status,empty_body,no_features,missing_field,parse}
	FetchDuration prometheus.Histogram
	ScreenSettled prometheus.Gauge
	PublishTotal  *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchTotal,
		m.FetchDuration,
		m.ScreenSettled,
		m.PublishTotal,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "didyoufeelit",
			Name:      "fetch_total",
			Help:      "USGS fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "didyoufeelit",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete fetch-and-parse cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 25},
		}),
		ScreenSettled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "didyoufeelit",
			Name:      "screen_settled",
			Help:      "1 once the screen has settled, 0 while the fetch is pending.",
		}),
		PublishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "didyoufeelit",
			Name:      "publish_total",
			Help:      "Settled events published to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}
