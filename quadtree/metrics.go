package quadtree

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	errTypeLabel = "error_type"
)

var (
	quadtreeQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_queries",
		Help: "The number of polygon queries.",
	})

	quadtreeQueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadtree_query_errors",
		Help: "The errors that occured while running a polygon query.",
	}, []string{
		errTypeLabel,
	})

	quadtreeQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "quadtree_query_latency",
		Help: "The time to run a polygon query.",
	})

	quadtreeFastPathHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_fast_path_hits",
		Help: "The number of quadrants collected without point tests.",
	})

	quadtreeBuildPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quadtree_build_points",
		Help:    "The number of points indexed by a tree build.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	quadtreeBuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "quadtree_build_latency",
		Help: "The time to build a point tree.",
	})
)

func instrumentQuery(start time.Time, err error) {
	quadtreeQueries.Inc()
	quadtreeQueryLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		quadtreeQueryErrors.
			With(prometheus.Labels{
				errTypeLabel: errors.Type(err),
			}).
			Inc()
	}
}

func instrumentFastPathHit() {
	quadtreeFastPathHits.Inc()
}

func instrumentBuild(start time.Time, points int) {
	quadtreeBuildPoints.Observe(float64(points))
	quadtreeBuildLatency.Observe(time.Since(start).Seconds())
}
