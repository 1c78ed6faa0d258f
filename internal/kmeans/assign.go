package kmeans

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/pointset"
)

// minChunk is the smallest number of points handed to one worker.
const minChunk = 256

// AssignPartition returns the index of the centroid closest to vec under
// squared L2. Ties go to the lowest index; -1 if there are no centroids.
func AssignPartition(vec []float64, centroids [][]float64) int {
	idx, _ := distance.Nearest(vec, centroids)
	return idx
}

// Assign labels every point of ps with its nearest centroid.
func Assign(ps *pointset.Set, centroids [][]float64) []int {
	labels := make([]int, ps.Len())
	assignRange(ps, centroids, labels, 0, ps.Len())
	return labels
}

// Inertia returns the sum of squared distances from each point to its
// nearest centroid.
func Inertia(ps *pointset.Set, centroids [][]float64) float64 {
	var sum float64
	for i := 0; i < ps.Len(); i++ {
		_, d := distance.Nearest(ps.Coords(i), centroids)
		sum += d
	}
	return sum
}

// assign runs one full assignment pass. With workers > 1 the points are
// split into contiguous ranges; Wait is the barrier before the update pass.
// Each worker writes a disjoint slice of assignments and only reads centroids.
func assign(ctx context.Context, ps *pointset.Set, centroids [][]float64, assignments []int, workers int) error {
	n := ps.Len()
	if workers <= 1 || n < 2*minChunk {
		assignRange(ps, centroids, assignments, 0, n)
		return nil
	}

	chunk := max((n+workers-1)/workers, minChunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assignRange(ps, centroids, assignments, start, end)
			return nil
		})
	}

	return g.Wait()
}

func assignRange(ps *pointset.Set, centroids [][]float64, assignments []int, start, end int) {
	for i := start; i < end; i++ {
		assignments[i], _ = distance.Nearest(ps.Coords(i), centroids)
	}
}
