// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_queries_completed_total",
			Help: "Total number of support queries answered successfully",
		},
		[]string{"model"},
	)

	QueriesBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_queries_blocked_total",
			Help: "Total number of support queries blocked by the safety gate",
		},
		[]string{"category"},
	)

	QueriesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_queries_failed_total",
			Help: "Total number of support queries that ended in an error",
		},
		[]string{"model", "error_code"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "support_query_duration_seconds",
			Help: "End-to-end duration of query processing in seconds",
		},
		[]string{"model"},
	)

	QueryCost = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "support_query_cost_usd",
			Help:    "Estimated completion cost per query in USD",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"model"},
	)

	ModerationChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_moderation_checks_total",
			Help: "Total number of moderation checks by outcome",
		},
		[]string{"outcome"},
	)

	InjectionDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_injection_detections_total",
			Help: "Total number of prompt injection heuristic hits by risk level",
		},
		[]string{"risk_level"},
	)
)
