// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiddengems_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// GeocodeLookups counts geocoder lookups by outcome (hit, miss, error, cached).
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiddengems_geocode_lookups_total",
		Help: "Total number of geocoder lookups by outcome",
	}, []string{"outcome"})

	// GeocodeLatency records geocoder request latency.
	GeocodeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hiddengems_geocode_latency_seconds",
		Help:    "Geocoder HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// GemListResults records how many gems survive the listing pipeline
	// before pagination.
	GemListResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hiddengems_gem_list_results",
		Help:    "Number of gems matching a listing request before pagination",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// VotesCast counts vote submissions by type.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiddengems_votes_cast_total",
		Help: "Total number of votes cast by type",
	}, []string{"type"})
)

// ObserveGeocode records a geocoder lookup outcome and latency.
func ObserveGeocode(outcome string, start time.Time) {
	GeocodeLookups.WithLabelValues(outcome).Inc()
	GeocodeLatency.Observe(time.Since(start).Seconds())
}
