// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssistantQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Total number of assistant queries processed, by classified intent",
		},
		[]string{"intent"},
	)

	AssistantQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_query_errors_total",
			Help: "Total number of assistant queries that failed, by error code",
		},
		[]string{"error_code"},
	)

	GenerationStrategy = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generation_total",
			Help: "Total number of answers produced, by generation strategy",
		},
		[]string{"strategy"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_query_duration_seconds",
			Help: "Duration of assistant query stages in seconds",
		},
		[]string{"stage"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_rate_limited_total",
			Help: "Total number of queries rejected by the rate limiter",
		},
	)
)
