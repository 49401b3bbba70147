package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	NotificationsSent *prometheus.CounterVec
	SendErrors        *prometheus.CounterVec
	PassengersSkipped prometheus.Counter
	ComposeTime       prometheus.Histogram
}

// NewMetrics creates new prometheus metrics registered on reg. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notifications delivered, by channel",
		}, []string{"channel"}),
		SendErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_errors_total",
			Help:      "The total number of delivery and skip errors, by channel",
		}, []string{"channel"}),
		PassengersSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passengers_skipped_total",
			Help:      "The total number of passengers skipped by the preference gate",
		}),
		ComposeTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compose_time_seconds",
			Help:      "Time taken to compose and dispatch one send request",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
