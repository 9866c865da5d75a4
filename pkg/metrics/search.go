package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics tracks catalog search pipeline behavior.
type SearchMetrics struct {
	duration     *prometheus.HistogramVec
	resultCount  prometheus.Histogram
	shortCircuit prometheus.Counter
}

// NewSearchMetrics registers catalog search metrics on the provided registerer.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		return &SearchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_search_duration_seconds",
		Help:    "Duration of catalog search requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	resultCount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_search_result_count",
		Help:    "Items returned per catalog search page.",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	})
	shortCircuit := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_search_model_short_circuit_total",
		Help: "Searches answered empty because the model filter matched no device models.",
	})
	reg.MustRegister(duration, resultCount, shortCircuit)
	return &SearchMetrics{
		duration:     duration,
		resultCount:  resultCount,
		shortCircuit: shortCircuit,
	}
}

// ObserveSearch records one completed search request.
func (s *SearchMetrics) ObserveSearch(outcome string, duration time.Duration, items int) {
	if s == nil || s.duration == nil {
		return
	}
	if outcome == "" {
		outcome = "ok"
	}
	s.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	s.resultCount.Observe(float64(items))
}

// IncModelShortCircuit counts an empty-model short circuit.
func (s *SearchMetrics) IncModelShortCircuit() {
	if s == nil || s.shortCircuit == nil {
		return
	}
	s.shortCircuit.Inc()
}
