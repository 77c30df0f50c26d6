package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecalcMetrics records activity of the debounced document recalculators.
type RecalcMetrics struct {
	passes     *prometheus.CounterVec
	suppressed *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecalcMetrics registers the recalculation metrics on the provided
// registerer.
func NewRecalcMetrics(reg prometheus.Registerer) *RecalcMetrics {
	if reg == nil {
		return &RecalcMetrics{}
	}
	passes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recalc_aggregate_passes",
		Help: "Aggregate recalculation passes that ran after the quiet period.",
	}, []string{"document"})
	suppressed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recalc_publishes_suppressed",
		Help: "Aggregate passes whose result matched the previous publish.",
	}, []string{"document"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recalc_compute_duration_seconds",
		Help:    "Duration of aggregate recalculation passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"document"})
	reg.MustRegister(passes, suppressed, duration)
	return &RecalcMetrics{
		passes:     passes,
		suppressed: suppressed,
		duration:   duration,
	}
}

// IncPass increments the aggregate-pass counter for the document kind.
func (r *RecalcMetrics) IncPass(document string) {
	if r == nil || r.passes == nil {
		return
	}
	r.passes.WithLabelValues(normalizeLabel(document)).Inc()
}

// IncSuppressed increments the suppressed-publish counter for the document
// kind.
func (r *RecalcMetrics) IncSuppressed(document string) {
	if r == nil || r.suppressed == nil {
		return
	}
	r.suppressed.WithLabelValues(normalizeLabel(document)).Inc()
}

// ObserveCompute records how long an aggregate pass took.
func (r *RecalcMetrics) ObserveCompute(document string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(document)).Observe(duration.Seconds())
}
