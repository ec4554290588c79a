package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cr360_queries_total",
			Help: "Processed questions by terminal outcome.",
		},
		[]string{"outcome"},
	)

	attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cr360_attempts_total",
			Help: "Failed generation attempts by category.",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal, attemptsTotal)
}

func recordQuery(outcome string) {
	queriesTotal.WithLabelValues(outcome).Inc()
}

func recordAttempt(category string) {
	attemptsTotal.WithLabelValues(category).Inc()
}
