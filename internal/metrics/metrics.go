// Package metrics declares the Prometheus collectors shared by the
// services and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cinema"

var (
	// AdminCacheLookups counts admin guard decisions by result (hit, miss).
	AdminCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_cache_lookups_total",
		Help:      "Admin guard lookups partitioned by cache result.",
	}, []string{"result"})

	// AdminCacheEntries reports the current size of the admin cache.
	AdminCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "admin_cache_entries",
		Help:      "Number of caller ids held by the admin guard cache.",
	})

	// RemoteCallDuration observes inter-service calls by target and outcome.
	RemoteCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_call_duration_seconds",
		Help:      "Latency of calls to peer services.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"target", "operation", "outcome"})

	// StorePersists counts record store flushes by collection and outcome.
	StorePersists = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_store_persist_total",
		Help:      "Whole-collection flushes partitioned by outcome.",
	}, []string{"collection", "outcome"})

	// BookingEvents counts published booking events by type and outcome.
	BookingEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_events_published_total",
		Help:      "Booking events handed to the broker.",
	}, []string{"type", "outcome"})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome converts an error into the label value used by the collectors.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
