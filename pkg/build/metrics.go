package build

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedBuilder wraps Build with a Prometheus counter and histogram
// (Diff is not instrumented), for callers (like cmd/docdiff run as a long-lived service
// rather than a one-shot CLI) that want observability without the core
// packages themselves depending on prometheus. The core stays pure;
// this is an optional layer bolted on at the edge.
type InstrumentedBuilder struct {
	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

// NewInstrumentedBuilder registers its metrics against reg. Passing
// prometheus.NewRegistry() keeps metrics scoped to a single builder
// instance; passing prometheus.DefaultRegisterer shares the process-wide
// default registry.
func NewInstrumentedBuilder(reg prometheus.Registerer) *InstrumentedBuilder {
	b := &InstrumentedBuilder{
		buildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docmerkle_builds_total",
			Help: "Total number of document builds, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docmerkle_build_duration_seconds",
			Help:    "Time spent parsing, canonicalizing, and hashing a document.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(b.buildsTotal, b.buildDuration)
	return b
}

// Build instruments a call to Build, recording its duration and outcome.
func (b *InstrumentedBuilder) Build(data []byte, kind Kind) (BuildResult, error) {
	start := time.Now()
	result, err := Build(data, kind)
	b.buildDuration.WithLabelValues(kindLabel(kind)).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	b.buildsTotal.WithLabelValues(kindLabel(kind), outcome).Inc()
	return result, err
}

func kindLabel(kind Kind) string {
	if kind == JSON {
		return "json"
	}
	return "xml"
}
