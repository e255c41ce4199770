package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ClassificationsTotal counts pipeline results by the tier that produced them.
	ClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "civicmap",
		Subsystem: "classify",
		Name:      "results_total",
		Help:      "Total classification pipeline results, labeled by provider tier.",
	}, []string{"provider"})

	// RemoteFailuresTotal counts soft failures of the remote classifier tier.
	RemoteFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "civicmap",
		Subsystem: "classify",
		Name:      "remote_failures_total",
		Help:      "Soft failures of the remote classifier, labeled by cause.",
	}, []string{"cause"})

	// RemoteDurationSeconds is end-to-end time of the remote classifier call.
	RemoteDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "civicmap",
		Subsystem: "classify",
		Name:      "remote_duration_seconds",
		Help:      "End-to-end time of the remote classifier request.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// ReportsCreatedTotal counts created reports by category.
	ReportsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "civicmap",
		Subsystem: "reports",
		Name:      "created_total",
		Help:      "Total reports created, labeled by category.",
	}, []string{"category"})
)

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ClassificationsTotal,
			RemoteFailuresTotal,
			RemoteDurationSeconds,
			ReportsCreatedTotal,
		)
	})
}
