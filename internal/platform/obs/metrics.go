package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "naveval",
		Name:      "evaluations_total",
		Help:      "Scored candidate routes by verdict.",
	}, []string{"verdict"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "naveval",
		Name:      "evaluation_cache_lookups_total",
		Help:      "Evaluation cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "naveval",
		Name:      "operation_duration_seconds",
		Help:      "Duration of timed operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "status"})
)

// RecordVerdict counts one scored candidate.
func RecordVerdict(verdict string) {
	evaluationsTotal.WithLabelValues(verdict).Inc()
}

// RecordCacheLookup counts cache hits and misses; errors are counted once per failed lookup.
func RecordCacheLookup(hits, misses int, failed bool) {
	if failed {
		cacheLookups.WithLabelValues("error").Inc()
	}
	cacheLookups.WithLabelValues("hit").Add(float64(hits))
	cacheLookups.WithLabelValues("miss").Add(float64(misses))
}
