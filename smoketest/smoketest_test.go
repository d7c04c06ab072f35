package smoketest

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadslice/quadtree"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestSmokeTest(t *testing.T) {
	t.Run("smoke test success", func(t *testing.T) {
		var sent Results
		res, err := Run(context.Background(), Options{
			SendResult: func(_ context.Context, res Results) error {
				sent = res
				return nil
			},
		})
		require.NoError(t, err)
		require.Equal(t, StatusOK, res.Status)
		require.Equal(t, 72*37, res.Points)
		require.Greater(t, res.Nodes, 1)
		require.Greater(t, res.MaxDepth, 0)
		require.Empty(t, res.Failures)
		require.Equal(t, res, sent)
	})

	t.Run("smoke test with custom points", func(t *testing.T) {
		res, err := Run(context.Background(), Options{
			Points:      []orb.Point{{-10, -10}, {10, 10}, {-10, 10}, {10, -10}, {0, 0}},
			TreeOptions: []quadtree.Option{quadtree.WithRootFromPoints()},
		})
		require.NoError(t, err)
		require.Equal(t, StatusOK, res.Status)
		require.Equal(t, 5, res.Points)
		require.Equal(t, 5, res.Nodes)
	})

	t.Run("smoke test with grid step", func(t *testing.T) {
		res, err := Run(context.Background(), Options{GridStep: 30})
		require.NoError(t, err)
		require.Equal(t, 12*7, res.Points)
	})

	t.Run("smoke test failure", func(t *testing.T) {
		res, err := Run(context.Background(), Options{
			Points: []orb.Point{{-10, -10}, {10, 10}, {-10, 10}, {10, -10}, {0, 0}, {math.NaN(), math.NaN()}},
		})
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeCheckFailed))
		require.Equal(t, StatusFailed, res.Status)
		require.NotEmpty(t, res.Failures)
	})

	t.Run("smoke test with invalid grid step", func(t *testing.T) {
		res, err := Run(context.Background(), Options{GridStep: -1})
		require.Error(t, err)
		require.Equal(t, StatusFailed, res.Status)
	})

	t.Run("smoke test canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := Run(ctx, Options{GridStep: 30})
		require.Error(t, err)
		require.True(t, errors.Is(err, context.Canceled))
		require.Equal(t, StatusFailed, res.Status)
		require.Equal(t, 12*7, res.Points)
	})

	t.Run("sending result failure is logged", func(t *testing.T) {
		var b strings.Builder
		logs.SetInlineEncoder()
		logs.SetLogger(func(e logs.Entry) {
			fmt.Fprint(&b, e)
		})

		_, err := Run(context.Background(), Options{
			GridStep: 30,
			SendResult: func(context.Context, Results) error {
				return errors.New("result endpoint unreachable")
			},
		})
		require.NoError(t, err)
		require.Contains(t, b.String(), "sending smoke test result failed")
	})
}
