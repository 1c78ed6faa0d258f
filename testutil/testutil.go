package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kmeanspp/pointset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformRows generates num rows with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformRows(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	rows := make([][]float64, num)

	for i := range num {
		row := data[i*dim : (i+1)*dim]
		for j := range row {
			row[j] = r.rand.Float64()
		}
		rows[i] = row
	}

	return rows
}

// ClusteredRows generates num rows around clusters centers drawn uniformly
// from [-scale, scale)^dim, with Gaussian noise of the given spread.
// Row i belongs to center i%clusters.
func (r *RNG) ClusteredRows(num, dim, clusters int, scale, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([][]float64, clusters)
	for c := range centers {
		centers[c] = make([]float64, dim)
		for j := range dim {
			centers[c][j] = (r.rand.Float64()*2 - 1) * scale
		}
	}

	data := make([]float64, num*dim)
	rows := make([][]float64, num)

	for i := range num {
		center := centers[i%clusters]
		row := data[i*dim : (i+1)*dim]
		for j := range dim {
			row[j] = center[j] + r.rand.NormFloat64()*spread
		}
		rows[i] = row
	}

	return rows
}

// UniformPoints is UniformRows wrapped in a point set with ids 0..num-1.
func (r *RNG) UniformPoints(num, dim int) *pointset.Set {
	return mustSet(r.UniformRows(num, dim))
}

// ClusteredPoints is ClusteredRows wrapped in a point set with ids 0..num-1.
func (r *RNG) ClusteredPoints(num, dim, clusters int, scale, spread float64) *pointset.Set {
	return mustSet(r.ClusteredRows(num, dim, clusters, scale, spread))
}

// MustPoints builds a point set from rows and panics on invalid input.
func MustPoints(rows ...[]float64) *pointset.Set {
	return mustSet(rows)
}

func mustSet(rows [][]float64) *pointset.Set {
	ps, err := pointset.FromRows(rows)
	if err != nil {
		panic(err)
	}
	return ps
}
