// Package obs holds the prometheus metrics of folio reports.
//
// Metrics live in a dedicated registry so that a report run can dump them
// to a node exporter textfile without the Go runtime collectors.
package obs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry is the registry holding every folio metric.
	Registry = prometheus.NewRegistry()

	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_conversions_total",
			Help: "Lots valued in a target currency, by valuation and conversion step.",
		},
		[]string{"valuation", "step"},
	)

	reportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_report_duration_seconds",
			Help:    "Report computation latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	ledgerErrors = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "folio_ledger_errors",
		Help: "Structural errors found in the last loaded ledger.",
	})
)

func init() {
	Registry.MustRegister(conversionsTotal, reportDuration, ledgerErrors)
}

// ObserveConversion counts a lot valued with a given valuation and step.
func ObserveConversion(valuation, step string) {
	conversionsTotal.WithLabelValues(valuation, step).Inc()
}

// ObserveReport records the duration of a report started at 'start'.
func ObserveReport(report string, start time.Time) {
	reportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// SetLedgerErrors sets the number of structural errors of the loaded ledger.
func SetLedgerErrors(n int) {
	ledgerErrors.Set(float64(n))
}

// WriteTextfile writes the current value of every metric to 'path', in the
// node exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
