package kmeans

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/random"
	"github.com/hupe1980/kmeanspp/testutil"
)

func TestRefine(t *testing.T) {
	ctx := context.Background()
	ps := testutil.MustPoints(
		[]float64{0, 0},
		[]float64{0, 1},
		[]float64{10, 0},
		[]float64{10, 1},
	)

	res, err := Refine(ctx, ps, [][]float64{{0, 0}, {10, 1}}, 300, 0.001)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Iterations, 300)
	assert.Less(t, res.MaxShift, 0.001)

	require.Len(t, res.Centroids, 2)
	assert.InDeltaSlice(t, []float64{0, 0.5}, res.Centroids[0], 1e-9)
	assert.InDeltaSlice(t, []float64{10, 0.5}, res.Centroids[1], 1e-9)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignments)
	assert.InDelta(t, 1.0, res.Inertia, 1e-9)
}

func TestRefine_EmptyClusterKeepsCoordinates(t *testing.T) {
	ctx := context.Background()
	ps := testutil.MustPoints(
		[]float64{0, 0},
		[]float64{1, 0},
		[]float64{0, 1},
		[]float64{1, 1},
	)

	res, err := Refine(ctx, ps, [][]float64{{0.2, 0.2}, {100, 100}}, 10, 0.0001)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 100}, res.Centroids[1])
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.Centroids[0], 1e-12)
	for _, c := range res.Centroids {
		for _, v := range c {
			assert.False(t, math.IsNaN(v))
		}
	}
}

func TestRefine_MaxIter(t *testing.T) {
	ctx := context.Background()
	ps := testutil.NewRNG(11).ClusteredPoints(200, 2, 4, 10, 2)
	initial := [][]float64{ps.Coords(0), ps.Coords(1), ps.Coords(2)}

	for _, maxIter := range []int{1, 2, 5} {
		// eps = 0 never converges: movement is never strictly below zero.
		res, err := Refine(ctx, ps, initial, maxIter, 0)
		require.NoError(t, err)
		assert.Equal(t, maxIter, res.Iterations)
		assert.False(t, res.Converged)
	}
}

func TestRefine_TerminatesWithinTolerance(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(21)

	for trial := 0; trial < 5; trial++ {
		ps := rng.ClusteredPoints(150, 3, 3, 5, 1)
		seeds, err := Seed(ps, 3, random.New(uint64(trial)))
		require.NoError(t, err)

		res, err := Refine(ctx, ps, Coords(seeds), 50, 0.01)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Iterations, 50)
		if res.Converged {
			assert.Less(t, res.MaxShift, 0.01)
		}
	}
}

func TestRefine_ObjectiveNeverIncreases(t *testing.T) {
	ctx := context.Background()
	ps := testutil.NewRNG(5).ClusteredPoints(300, 2, 5, 10, 3)
	initial := [][]float64{ps.Coords(0), ps.Coords(5), ps.Coords(10), ps.Coords(15)}

	prev := Inertia(ps, initial)
	for i := 1; i <= 15; i++ {
		res, err := Refine(ctx, ps, initial, i, 0)
		require.NoError(t, err)

		assert.LessOrEqual(t, res.Inertia, prev+1e-9, "iteration %d", i)
		assert.InDelta(t, Inertia(ps, res.Centroids), res.Inertia, 1e-9)
		prev = res.Inertia
	}
}

func TestRefine_Idempotent(t *testing.T) {
	ctx := context.Background()
	ps := testutil.NewRNG(8).ClusteredPoints(300, 2, 3, 100, 1)

	seeds, err := Seed(ps, 3, random.New(0))
	require.NoError(t, err)

	first, err := Refine(ctx, ps, Coords(seeds), 300, 0)
	require.NoError(t, err)
	require.Zero(t, first.MaxShift)

	again, err := Refine(ctx, ps, first.Centroids, 300, 1e-6)
	require.NoError(t, err)

	assert.True(t, again.Converged)
	assert.LessOrEqual(t, again.Iterations, 1)
	assert.Equal(t, first.Centroids, again.Centroids)
}

func TestRefine_DoesNotModifyInitial(t *testing.T) {
	ctx := context.Background()
	ps := testutil.MustPoints([]float64{0}, []float64{1}, []float64{10}, []float64{11})
	initial := [][]float64{{0}, {10}}

	_, err := Refine(ctx, ps, initial, 10, 0.001)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0}, {10}}, initial)
}

func TestRefine_Parallel(t *testing.T) {
	ctx := context.Background()
	ps := testutil.NewRNG(17).ClusteredPoints(3000, 4, 6, 10, 2)

	seeds, err := Seed(ps, 6, random.New(1))
	require.NoError(t, err)

	seq, err := Refine(ctx, ps, Coords(seeds), 100, 1e-6)
	require.NoError(t, err)

	par, err := Refine(ctx, ps, Coords(seeds), 100, 1e-6, WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

func TestRefine_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	ps := testutil.NewRNG(2).UniformPoints(1000, 2)

	_, err := Refine(ctx, ps, [][]float64{{0, 0}, {1, 1}}, 1000, 0.001)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Refine(ctx, ps, [][]float64{{0, 0}, {1, 1}}, 1000, 0.001, WithWorkers(8))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefine_InvalidArguments(t *testing.T) {
	ctx := context.Background()
	ps := testutil.MustPoints([]float64{0, 0}, []float64{1, 1}, []float64{2, 2})
	initial := [][]float64{{0, 0}}

	_, err := Refine(ctx, ps, initial, 0, 0.1)
	assert.ErrorIs(t, err, ErrInvalidMaxIter)

	_, err = Refine(ctx, ps, initial, -3, 0.1)
	assert.ErrorIs(t, err, ErrInvalidMaxIter)

	_, err = Refine(ctx, ps, initial, 10, -0.1)
	assert.ErrorIs(t, err, ErrInvalidEpsilon)

	_, err = Refine(ctx, ps, initial, 10, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidEpsilon)

	_, err = Refine(ctx, ps, nil, 10, 0.1)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = Refine(ctx, ps, [][]float64{{0}, {1}, {2}}, 10, 0.1)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = Refine(ctx, nil, initial, 10, 0.1)
	assert.ErrorIs(t, err, pointset.ErrEmpty)

	_, err = Refine(ctx, ps, [][]float64{{0, 0}, {1, 1, 1}}, 10, 0.1)
	var dm *ErrDimensionMismatch
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 1, dm.Centroid)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}
