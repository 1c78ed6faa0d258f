package kmeans

import (
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/random"
)

// Centroid is a seeded centroid together with the point it was sampled from.
type Centroid struct {
	ID     int64     // identifier of the originating point
	Index  int       // position of the originating point in the set
	Coords []float64 // copy of the point's coordinates
}

// Seed selects k initial centroids from ps using k-means++.
//
// The source is called exactly once with UniformIndex(n) and then k-1 times
// with WeightedIndex, in that order. With WithUniformFallback, each degenerate
// round adds one UniformIndex call.
func Seed(ps *pointset.Set, k int, src random.Source, optFns ...Option) ([]Centroid, error) {
	if ps == nil || ps.Len() == 0 {
		return nil, pointset.ErrEmpty
	}
	n := ps.Len()
	if k <= 0 || k >= n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n)
	}
	if src == nil {
		return nil, ErrNilSource
	}

	o := applyOptions(optFns)

	// minDist[i] is the squared distance from point i to its nearest chosen
	// centroid. It only ever shrinks.
	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	chosen := roaring.New()
	centroids := make([]Centroid, 0, k)

	pick := func(idx int) {
		chosen.Add(uint32(idx))
		centroids = append(centroids, Centroid{
			ID:     ps.ID(idx),
			Index:  idx,
			Coords: slices.Clone(ps.Coords(idx)),
		})
		o.logger.Debug("centroid seeded",
			"round", len(centroids),
			"id", ps.ID(idx),
			"index", idx,
		)
	}

	pick(src.UniformIndex(n))

	for len(centroids) < k {
		updateMinDistances(ps, centroids[len(centroids)-1].Coords, minDist)

		idx, ok := src.WeightedIndex(minDist)
		if !ok {
			if !o.uniformFallback {
				return nil, fmt.Errorf("%w: %d of %d centroids chosen", ErrDegenerateSeeding, len(centroids), k)
			}
			idx = uniformUnchosen(src, chosen, n)
			o.logger.Warn("degenerate seeding distribution, drawing uniformly",
				"round", len(centroids)+1,
			)
		}

		pick(idx)
	}

	return centroids, nil
}

// updateMinDistances lowers minDist against the newest centroid only.
func updateMinDistances(ps *pointset.Set, newest []float64, minDist []float64) {
	for i := range minDist {
		if d := distance.SquaredL2(ps.Coords(i), newest); d < minDist[i] {
			minDist[i] = d
		}
	}
}

// uniformUnchosen draws uniformly among the indices in [0, n) not in chosen.
// Callers guarantee at least one such index exists (k < n).
func uniformUnchosen(src random.Source, chosen *roaring.Bitmap, n int) int {
	remaining := n - int(chosen.GetCardinality())
	r := src.UniformIndex(remaining)

	for i := 0; i < n; i++ {
		if chosen.Contains(uint32(i)) {
			continue
		}
		if r == 0 {
			return i
		}
		r--
	}

	return -1
}

// Coords returns the coordinate vectors of cs in order.
func Coords(cs []Centroid) [][]float64 {
	out := make([][]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Coords
	}
	return out
}

// IDs returns the originating point identifiers of cs in order.
func IDs(cs []Centroid) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
