// Package metrics exposes Prometheus counters for catalog ingestion and
// relationship maintenance.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SeedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_seed_records_total",
			Help: "Records created by the bulk loader",
		},
		[]string{"kind"},
	)

	SeedUnresolvedRefs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_seed_unresolved_refs_total",
			Help: "Genre or actor names in movie records that did not resolve",
		},
		[]string{"kind"},
	)

	SeedDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_seed_duration_seconds",
			Help:    "Duration of bulk loader runs",
			Buckets: []float64{.05, .1, .5, 1, 5, 10, 30},
		},
	)

	GuardedDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_guarded_deletes_total",
			Help: "Genre and actor deletions by outcome (deleted, forced, conflict)",
		},
		[]string{"kind", "outcome"},
	)

	DetachedEdges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_detached_edges_total",
			Help: "Movie associations removed by forced deletes",
		},
		[]string{"kind"},
	)
)

// RecordSeed records a completed loader run.
func RecordSeed(genres, actors, movies int, duration time.Duration) {
	SeedRecords.WithLabelValues("genre").Add(float64(genres))
	SeedRecords.WithLabelValues("actor").Add(float64(actors))
	SeedRecords.WithLabelValues("movie").Add(float64(movies))
	SeedDuration.Observe(duration.Seconds())
}

// RecordGuardedDelete records the outcome of a genre or actor delete. detached
// is the number of movies the entity was stripped from.
func RecordGuardedDelete(kind, outcome string, detached int) {
	GuardedDeletes.WithLabelValues(kind, outcome).Inc()
	if detached > 0 {
		DetachedEdges.WithLabelValues(kind).Add(float64(detached))
	}
}
