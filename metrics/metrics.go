package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DecisionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_decisions_recorded_total",
			Help: "Total swipe decisions recorded, by verdict",
		},
		[]string{"verdict"},
	)

	DecisionsDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_decisions_duplicate_total",
			Help: "Re-swipes with an identical verdict, treated as no-ops",
		},
	)

	MatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_created_total",
			Help: "Total mutual matches created",
		},
	)

	UndoResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_undo_total",
			Help: "Undo attempts, by outcome",
		},
		[]string{"outcome"},
	)

	FeedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_feed_requests_total",
			Help: "Recommendation feed batches served",
		},
	)

	FeedBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_feed_batch_size",
			Help:    "Number of candidates returned per feed batch",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
	)

	ScoresComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_scores_computed_total",
			Help: "Pairwise compatibility scores computed",
		},
	)

	VectorCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_vector_cache_total",
			Help: "Feature-vector cache lookups, by result",
		},
		[]string{"result"},
	)
)
