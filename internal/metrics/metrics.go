// Package metrics exposes the prometheus collectors shared by the fetch pipeline
// and the mock data source.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Lookups counts resolved suggestion lookups by where the answer came from.
	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citycomplete_lookups_total",
		Help: "Suggestion lookups by source (cache, remote, fallback)",
	}, []string{"source"})

	// RemoteFailures counts remote lookups that degraded to the fallback list.
	RemoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citycomplete_remote_failures_total",
		Help: "Remote lookups that failed, by failure kind",
	}, []string{"kind"})

	RemoteLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "citycomplete_remote_seconds",
		Help:    "Latency of remote data source calls",
		Buckets: prometheus.DefBuckets,
	})

	// StaleResponses counts lookups whose result arrived after the field moved on.
	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "citycomplete_stale_responses_total",
		Help: "Lookup results dropped because a newer query superseded them",
	})

	// ServedSearches counts requests answered by the mock data source.
	ServedSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "citycomplete_served_searches_total",
		Help: "City searches answered by the mock data source",
	})

	// Submissions counts calculator submissions by outcome.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citycomplete_submissions_total",
		Help: "Calculator submissions by status",
	}, []string{"status"})
)
