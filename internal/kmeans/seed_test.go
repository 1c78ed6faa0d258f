package kmeans

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/random"
	"github.com/hupe1980/kmeanspp/testutil"
)

func TestSeed_Membership(t *testing.T) {
	rng := testutil.NewRNG(4711)
	ps := rng.ClusteredPoints(200, 3, 4, 10, 0.5)

	ks := []int{1, 2, 4, 7, 199}
	for range 5 {
		ks = append(ks, 1+rng.Intn(ps.Len()-1))
	}

	for _, k := range ks {
		centroids, err := Seed(ps, k, random.New(random.DefaultSeed))
		require.NoError(t, err)
		require.Len(t, centroids, k)

		seen := make(map[int]bool, k)
		for _, c := range centroids {
			assert.False(t, seen[c.Index], "index %d chosen twice", c.Index)
			seen[c.Index] = true

			assert.Equal(t, ps.ID(c.Index), c.ID)
			assert.Equal(t, ps.Coords(c.Index), c.Coords)
		}
	}
}

func TestSeed_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(1)
	ps := rng.ClusteredPoints(300, 4, 5, 20, 1)

	first, err := Seed(ps, 5, random.New(42))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := Seed(ps, 5, random.New(42))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSeed_CallOrder(t *testing.T) {
	ps := testutil.NewRNG(9).UniformPoints(50, 2)
	src := &testutil.CountingSource{Source: random.New(0)}

	_, err := Seed(ps, 6, src)
	require.NoError(t, err)

	require.Len(t, src.Calls, 6)
	assert.Equal(t, testutil.Call{N: 50, Result: src.Calls[0].Result}, src.Calls[0])
	for _, c := range src.Calls[1:] {
		assert.True(t, c.Weighted)
		assert.Equal(t, 50, c.N)
	}
}

func TestSeed_HugeCoordinates(t *testing.T) {
	// Squared distances overflow to +Inf; the points are still distinct.
	ps := testutil.MustPoints(
		[]float64{0},
		[]float64{1e200},
		[]float64{2e200},
		[]float64{3e200},
	)

	for _, k := range []int{2, 3} {
		centroids, err := Seed(ps, k, random.New(random.DefaultSeed))
		require.NoError(t, err)
		require.Len(t, centroids, k)

		seen := make(map[int64]bool, k)
		for _, id := range IDs(centroids) {
			assert.False(t, seen[id], "id %d chosen twice", id)
			seen[id] = true
		}
	}
}

func TestSeed_PicksFarthestUnderArgmax(t *testing.T) {
	ps := testutil.MustPoints(
		[]float64{0, 0},
		[]float64{0, 1},
		[]float64{10, 0},
		[]float64{10, 1},
	)

	centroids, err := Seed(ps, 2, &testutil.ArgmaxSource{})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 3}, IDs(centroids))
	assert.Equal(t, [][]float64{{0, 0}, {10, 1}}, Coords(centroids))
}

func TestSeed_KeepsIdentifiers(t *testing.T) {
	ps, err := pointset.New([]pointset.Point{
		{ID: 100, Coords: []float64{0}},
		{ID: 42, Coords: []float64{5}},
		{ID: 7, Coords: []float64{9}},
	})
	require.NoError(t, err)

	centroids, err := Seed(ps, 2, &testutil.ArgmaxSource{First: 1})
	require.NoError(t, err)

	// 42 first, then 100 (distance 25) beats 7 (distance 16).
	assert.Equal(t, []int64{42, 100}, IDs(centroids))
}

func TestSeed_InvalidK(t *testing.T) {
	ps := testutil.MustPoints([]float64{0}, []float64{1}, []float64{2})

	for _, k := range []int{-1, 0, 3, 4} {
		src := &testutil.CountingSource{Source: random.New(0)}
		_, err := Seed(ps, k, src)
		assert.ErrorIs(t, err, ErrInvalidK, "k=%d", k)
		assert.Empty(t, src.Calls, "k=%d", k)
	}
}

func TestSeed_EmptyAndNil(t *testing.T) {
	_, err := Seed(nil, 1, random.New(0))
	assert.ErrorIs(t, err, pointset.ErrEmpty)

	ps := testutil.MustPoints([]float64{0}, []float64{1})
	_, err = Seed(ps, 1, nil)
	assert.ErrorIs(t, err, ErrNilSource)
}

func TestSeed_Degenerate(t *testing.T) {
	ps := testutil.MustPoints(
		[]float64{1, 1},
		[]float64{1, 1},
		[]float64{1, 1},
		[]float64{2, 2},
	)

	t.Run("Fails", func(t *testing.T) {
		_, err := Seed(ps, 3, &testutil.ArgmaxSource{})
		assert.ErrorIs(t, err, ErrDegenerateSeeding)
	})

	t.Run("UniformFallback", func(t *testing.T) {
		centroids, err := Seed(ps, 3, &testutil.ArgmaxSource{}, WithUniformFallback())
		require.NoError(t, err)

		// 0, then 3 by weight, then the first unchosen index uniformly.
		assert.Equal(t, []int64{0, 3, 1}, IDs(centroids))
	})

	t.Run("UniformFallbackNeverRepeats", func(t *testing.T) {
		same := make([][]float64, 10)
		for i := range same {
			same[i] = []float64{3, 3}
		}
		ps := testutil.MustPoints(same...)

		centroids, err := Seed(ps, 9, random.New(5), WithUniformFallback())
		require.NoError(t, err)

		seen := make(map[int]bool)
		for _, c := range centroids {
			assert.False(t, seen[c.Index])
			seen[c.Index] = true
		}
	})
}

func TestUpdateMinDistances(t *testing.T) {
	rng := testutil.NewRNG(3)
	ps := rng.UniformPoints(40, 3)
	centers := rng.UniformRows(5, 3)

	minDist := make([]float64, ps.Len())
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	prev := make([]float64, ps.Len())
	for r, c := range centers {
		copy(prev, minDist)
		updateMinDistances(ps, c, minDist)

		for i := range minDist {
			// Never increases.
			assert.LessOrEqual(t, minDist[i], prev[i])

			// Incremental update equals recomputing against all centers so far.
			_, want := distance.Nearest(ps.Coords(i), centers[:r+1])
			assert.Equal(t, want, minDist[i])
		}
	}
}
