// Package metrics defines Prometheus metrics for the enerlink server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enerlink_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enerlink_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enerlink_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ActivityQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "enerlink_activity_queue_depth",
			Help: "Current activity recorder queue depth",
		},
	)

	ActivityDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enerlink_activity_entries_dropped_total",
			Help: "Activity entries dropped because the recorder queue was full",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "enerlink_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	GeocodeCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enerlink_geocode_cache_hits_total",
			Help: "Geocode lookups served from the database cache",
		},
	)

	GeocodeCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enerlink_geocode_cache_misses_total",
			Help: "Geocode lookups that went to the upstream geocoder",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ActivityQueueDepth, ActivityDropped, WSConnections,
		GeocodeCacheHits, GeocodeCacheMisses,
	)
}
