// Package random provides the deterministic random source consumed by the
// k-means++ seeder.
//
// The seeder never touches process-wide random state. Callers construct a
// Source once, seeded, and pass it in; identical seeds and identical call
// sequences yield identical draws.
package random

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed uint64 = 0

// Source draws indices for the seeder.
type Source interface {
	// UniformIndex returns an index in [0, n) with equal probability.
	UniformIndex(n int) int

	// WeightedIndex returns an index i with probability
	// weights[i] / sum(weights). It reports false if the weights are empty,
	// contain a negative or NaN entry, or sum to zero. An index with zero
	// weight is never returned.
	WeightedIndex(weights []float64) (int, bool)
}

// Compile-time interface check
var _ Source = (*PCG)(nil)

// PCG is a Source backed by math/rand/v2's PCG generator.
// It is thread-safe, though determinism requires a fixed call order.
type PCG struct {
	mu   sync.Mutex
	src  *rand.PCG
	rand *rand.Rand
	seed uint64
}

// New creates a PCG source with the given seed.
func New(seed uint64) *PCG {
	src := rand.NewPCG(seed, seed)
	return &PCG{
		src:  src,
		rand: rand.New(src),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (p *PCG) Seed() uint64 {
	return p.seed
}

// Reset rewinds the generator to its initial seed.
func (p *PCG) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src.Seed(p.seed, p.seed)
}

// UniformIndex implements Source. It panics if n <= 0.
func (p *PCG) UniformIndex(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rand.IntN(n)
}

// WeightedIndex implements Source.
//
// Weights whose sum overflows are rescaled by the largest one. If some
// weights are +Inf, one of those is drawn uniformly.
func (p *PCG) WeightedIndex(weights []float64) (int, bool) {
	if len(weights) == 0 {
		return -1, false
	}

	var inf []int
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return -1, false
		}
		if math.IsInf(w, 1) {
			inf = append(inf, i)
		}
	}

	if len(inf) > 0 {
		p.mu.Lock()
		i := inf[p.rand.IntN(len(inf))]
		p.mu.Unlock()
		return i, true
	}

	cum := make([]float64, len(weights))
	floats.CumSum(cum, weights)

	total := cum[len(cum)-1]
	if math.IsInf(total, 1) {
		scaled := make([]float64, len(weights))
		floats.ScaleTo(scaled, 1/floats.Max(weights), weights)
		floats.CumSum(cum, scaled)
		total = cum[len(cum)-1]
	}
	if total <= 0 {
		return -1, false
	}

	p.mu.Lock()
	u := p.rand.Float64()
	p.mu.Unlock()

	// First index whose cumulative weight exceeds the target. Strict
	// comparison skips zero-weight entries.
	target := u * total
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > target })
	if i == len(cum) {
		// u*total rounded up to total.
		i = len(weights) - 1
		for weights[i] == 0 {
			i--
		}
	}

	return i, true
}
