// Package smoketest builds an index at runtime and verifies that queries
// against it behave as expected.
package smoketest

import (
	"context"
	"fmt"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadslice/grid"
	"github.com/aukilabs/quadslice/models"
	"github.com/aukilabs/quadslice/quadtree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"

	// DefaultGridStep is the step, in degrees, of the longitude/latitude grid
	// indexed when no point is given.
	DefaultGridStep = 5

	// The number of stored points searched for during the nearest neighbour
	// check.
	nearestSamples = 100

	ErrTypeCheckFailed = "smoke_test_check_failed"
)

type Options struct {
	// The points to index. A longitude/latitude grid is used when empty.
	Points []orb.Point

	// The step of the default longitude/latitude grid.
	GridStep float64

	TreeOptions []quadtree.Option

	// Called with the results when set.
	SendResult func(context.Context, Results) error
}

type Results struct {
	Status               string   `json:"status"`
	Points               int      `json:"points"`
	Nodes                int      `json:"nodes"`
	MaxDepth             int      `json:"max_depth"`
	BuildLatencyMilliSec float64  `json:"build_latency_ms"`
	QueryLatencyMilliSec float64  `json:"query_latency_ms"`
	Failures             []string `json:"failures,omitempty"`
}

type check struct {
	name string
	run  func(*models.Index, orb.Bound) error
}

var checks = []check{
	{name: "completeness", run: checkCompleteness},
	{name: "covering_query", run: checkCoveringQuery},
	{name: "disjoint_query", run: checkDisjointQuery},
	{name: "idempotence", run: checkIdempotence},
	{name: "nearest_neighbor", run: checkNearestNeighbor},
}

// Run builds an index and runs every check against it. An error is returned
// when the context is canceled or when a check fails, along with the results
// gathered so far.
func Run(ctx context.Context, opts Options) (Results, error) {
	points := opts.Points
	if len(points) == 0 {
		step := opts.GridStep
		if step == 0 {
			step = DefaultGridStep
		}

		var err error
		if points, err = grid.LonLat(step); err != nil {
			return Results{Status: StatusFailed}, errors.New("generating smoke test points failed").Wrap(err)
		}
	}

	start := time.Now()
	index := models.NewIndex("smoketest", points, opts.TreeOptions...)
	debugInfo := index.DebugInfo()

	res := Results{
		Points:               index.Len(),
		Nodes:                debugInfo.NodeCount,
		MaxDepth:             debugInfo.MaxDepth,
		BuildLatencyMilliSec: milliseconds(time.Since(start)),
	}

	bound := orb.MultiPoint(points).Bound()

	start = time.Now()
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			res.Status = StatusFailed
			return res, errors.New("smoke test canceled").
				WithTag("check", c.name).
				Wrap(err)
		}

		if err := c.run(index, bound); err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("%s: %s", c.name, err))
		}
	}
	res.QueryLatencyMilliSec = milliseconds(time.Since(start)) / float64(len(checks))

	var err error
	res.Status = StatusOK
	if len(res.Failures) != 0 {
		res.Status = StatusFailed
		err = errors.New("smoke test failed").
			WithType(ErrTypeCheckFailed).
			WithTag("failures", res.Failures)
	}

	logs.WithTag("status", res.Status).
		WithTag("points", res.Points).
		WithTag("nodes", res.Nodes).
		WithTag("max_depth", res.MaxDepth).
		WithTag("build_latency_ms", res.BuildLatencyMilliSec).
		WithTag("query_latency_ms", res.QueryLatencyMilliSec).
		Info("smoke test finished")

	if opts.SendResult != nil {
		if err := opts.SendResult(ctx, res); err != nil {
			logs.WithTag("status", res.Status).
				Warn(errors.New("sending smoke test result failed").Wrap(err))
		}
	}

	return res, err
}

func checkCompleteness(index *models.Index, bound orb.Bound) error {
	stored := index.StoredIndices()
	for i := 0; i < index.Len(); i++ {
		if !stored.Contains(i) {
			return errors.Newf("point %d is not stored", i)
		}
	}
	if len(stored) != index.Len() {
		return errors.Newf("%d indices are stored for %d points", len(stored), index.Len())
	}
	return nil
}

func checkCoveringQuery(index *models.Index, bound orb.Bound) error {
	res, err := index.Query(rectangle(bound.Pad(1)))
	if err != nil {
		return err
	}
	if len(res) != index.Len() {
		return errors.Newf("covering query returned %d points instead of %d", len(res), index.Len())
	}
	return nil
}

func checkDisjointQuery(index *models.Index, bound orb.Bound) error {
	disjoint := orb.Bound{
		Min: orb.Point{bound.Max[0] + 10, bound.Max[1] + 10},
		Max: orb.Point{bound.Max[0] + 20, bound.Max[1] + 20},
	}

	res, err := index.Query(rectangle(disjoint))
	if err != nil {
		return err
	}
	if len(res) != 0 {
		return errors.Newf("disjoint query returned %d points", len(res))
	}
	return nil
}

func checkIdempotence(index *models.Index, bound orb.Bound) error {
	center := bound.Center()
	polygon := []orb.Point{
		{bound.Min[0], center[1]},
		{center[0], bound.Min[1]},
		{bound.Max[0], center[1]},
		{center[0], bound.Max[1]},
	}

	first, err := index.Query(polygon)
	if err != nil {
		return err
	}

	second, err := index.Query(polygon)
	if err != nil {
		return err
	}

	a, b := first.Sorted(), second.Sorted()
	if len(a) != len(b) {
		return errors.Newf("repeated query returned %d points instead of %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			return errors.Newf("repeated query returned point %d instead of %d", b[i], a[i])
		}
	}
	return nil
}

func checkNearestNeighbor(index *models.Index, bound orb.Bound) error {
	n := index.Len()
	if n == 0 {
		return nil
	}

	stride := n / nearestSamples
	if stride == 0 {
		stride = 1
	}

	for i := 0; i < n; i += stride {
		query, ok := index.Point(i)
		if !ok {
			return errors.Newf("point %d not found", i)
		}

		_, p, ok := index.NearestNeighbor(query)
		if !ok {
			return errors.Newf("nearest neighbor of point %d not found", i)
		}
		if d := planar.DistanceSquared(p, query); d != 0 {
			return errors.Newf("nearest neighbor of point %d is at a squared distance of %v", i, d)
		}
	}
	return nil
}

func rectangle(b orb.Bound) []orb.Point {
	return []orb.Point{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
