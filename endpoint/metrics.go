package endpoint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "servefs"

// Metrics counts and times resolutions.  One Metrics may be shared by any
// number of handlers.
type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates resolution metrics and registers them with reg:
//
//	servefs_resolutions_total{status}   by outcome (ok, notfound, forbidden, error)
//	servefs_resolve_duration_seconds    time spent in the resolver
//
// A nil reg registers with prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Total number of resolved requests, by outcome",
		}, []string{"status"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observe(status string, elapsed time.Duration) {
	m.resolutions.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
}
