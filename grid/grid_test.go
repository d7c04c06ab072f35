package grid

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestRegular(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 4}}

	t.Run("edges are included", func(t *testing.T) {
		points, err := Regular(bound, 3, 2)
		require.NoError(t, err)
		require.Equal(t, []orb.Point{
			{0, 0}, {5, 0}, {10, 0},
			{0, 4}, {5, 4}, {10, 4},
		}, points)
	})

	t.Run("single point", func(t *testing.T) {
		points, err := Regular(bound, 1, 1)
		require.NoError(t, err)
		require.Equal(t, []orb.Point{{0, 0}}, points)
	})

	t.Run("points lie in the bound", func(t *testing.T) {
		bound := orb.Bound{Min: orb.Point{-0.3, -0.7}, Max: orb.Point{0.9, 0.1}}
		points, err := Regular(bound, 7, 13)
		require.NoError(t, err)
		require.Len(t, points, 91)

		for _, p := range points {
			require.True(t, bound.Contains(p))
		}
		require.Equal(t, bound.Max, points[len(points)-1])
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := Regular(bound, 0, 2)
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeInvalidGrid))
	})
}

func TestLonLat(t *testing.T) {
	t.Run("whole degrees", func(t *testing.T) {
		points, err := LonLat(90)
		require.NoError(t, err)
		require.Len(t, points, 4*3)
		require.Equal(t, orb.Point{-180, -90}, points[0])
		require.Equal(t, orb.Point{90, 90}, points[len(points)-1])

		for _, p := range points {
			require.GreaterOrEqual(t, p.X(), float64(-180))
			require.Less(t, p.X(), float64(180))
			require.GreaterOrEqual(t, p.Y(), float64(-90))
			require.LessOrEqual(t, p.Y(), float64(90))
		}
	})

	t.Run("fractional step", func(t *testing.T) {
		points, err := LonLat(0.3)
		require.NoError(t, err)
		require.Len(t, points, 1200*601)
	})

	t.Run("step not dividing the domain", func(t *testing.T) {
		points, err := LonLat(100)
		require.NoError(t, err)
		require.Len(t, points, 4*2)
	})

	t.Run("invalid step", func(t *testing.T) {
		for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := LonLat(step)
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeInvalidGrid))
		}
	})
}
