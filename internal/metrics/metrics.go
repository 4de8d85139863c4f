// Package metrics exposes cookme's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Matching
	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookme_match_duration_seconds",
			Help:    "Duration of recipe matching queries in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"policy", "scope"},
	)

	MatchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookme_match_results",
			Help:    "Number of recipes returned by a match",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"policy"},
	)

	MatchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookme_match_errors_total",
			Help: "Total number of failed matching queries",
		},
		[]string{"policy"},
	)

	UnknownIngredients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookme_unknown_ingredients_total",
			Help: "Search terms that did not resolve to a catalog ingredient",
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookme_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookme_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookme_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordMatch records one matching query.
func RecordMatch(policy, scope string, results int, duration time.Duration, err error) {
	MatchDuration.WithLabelValues(policy, scope).Observe(duration.Seconds())
	if err != nil {
		MatchErrors.WithLabelValues(policy).Inc()
		return
	}
	MatchResults.WithLabelValues(policy).Observe(float64(results))
}

// RecordUnknownIngredients counts search terms missing from the catalog.
func RecordUnknownIngredients(n int) {
	if n > 0 {
		UnknownIngredients.Add(float64(n))
	}
}

// RecordAPIRequest records a finished HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
