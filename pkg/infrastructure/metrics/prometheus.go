package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// PrometheusRecorder records sequencing outcomes as Prometheus metrics.
// Collectors are registered lazily on first use.
type PrometheusRecorder struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	recomputes      *prometheus.CounterVec
	recomputeTime   prometheus.Histogram
	excludedParts   *prometheus.CounterVec
	sequenceLengths *prometheus.GaugeVec
}

// NewPrometheus creates a recorder. A nil registerer means prometheus.DefaultRegisterer;
// an empty namespace means "prodseq".
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "prodseq"
	}
	return &PrometheusRecorder{reg: reg, namespace: namespace}
}

func (p *PrometheusRecorder) ensureRegistered() {
	p.once.Do(func() {
		p.recomputes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sequence",
			Name:      "recomputes_total",
			Help:      "Sequence recomputations by cell, family and stabilizer state.",
		}, []string{"cell", "family", "state"})

		p.recomputeTime = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "sequence",
			Name:      "recompute_seconds",
			Help:      "Time spent computing one sequence.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		})

		p.excludedParts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sequence",
			Name:      "excluded_parts_total",
			Help:      "Parts excluded from a recomputation by reason.",
		}, []string{"reason"})

		p.sequenceLengths = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "sequence",
			Name:      "length",
			Help:      "Number of requirements in the last sequence shown for a cell and family.",
		}, []string{"cell", "family"})

		p.reg.MustRegister(p.recomputes, p.recomputeTime, p.excludedParts, p.sequenceLengths)
	})
}

// RecordRecompute counts one recomputation and observes its duration
func (p *PrometheusRecorder) RecordRecompute(cell, family string, state entities.StabilizerState, elapsed time.Duration) {
	p.ensureRegistered()
	p.recomputes.WithLabelValues(cell, family, state.String()).Inc()
	p.recomputeTime.Observe(elapsed.Seconds())
}

// RecordExcluded counts a part dropped from a recomputation
func (p *PrometheusRecorder) RecordExcluded(reason string) {
	p.ensureRegistered()
	p.excludedParts.WithLabelValues(reason).Inc()
}

// SetSequenceLength records how many requirements were shown
func (p *PrometheusRecorder) SetSequenceLength(cell, family string, n int) {
	p.ensureRegistered()
	p.sequenceLengths.WithLabelValues(cell, family).Set(float64(n))
}
