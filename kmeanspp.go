package kmeanspp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/random"
)

// DefaultMaxIter is the iteration cap used when none is given.
const DefaultMaxIter = 300

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids are the K refined centroid vectors, in seeding order.
	Centroids [][]float64

	// InitialIDs are the identifiers of the seeded points, in selection order.
	InitialIDs []int64

	// Iterations is the number of refinement rounds that ran.
	Iterations int

	// Converged is false if refinement stopped at the iteration cap.
	Converged bool

	// Inertia is the sum of squared distances from each point to its
	// nearest final centroid.
	Inertia float64
}

// SeedResult is the outcome of Seed.
type SeedResult struct {
	// Centroids are copies of the seeded points' coordinates.
	Centroids [][]float64

	// IDs are the seeded points' identifiers, aligned with Centroids.
	IDs []int64
}

// Engine runs k-means++ seeding followed by Lloyd refinement.
// An Engine holds no per-run state and may be shared between goroutines,
// as long as each run gets its own random.Source.
type Engine struct {
	opts options
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	return &Engine{opts: applyOptions(optFns)}
}

// Run seeds k centroids from ps using src, then refines them for at most
// maxIter iterations or until no centroid moves by eps or more.
//
// Errors wrap ErrInvalidInput (bad k, maxIter or eps, degenerate seeding)
// or ErrGeneric (inconsistent data). Context errors are returned as is.
func (e *Engine) Run(ctx context.Context, ps *pointset.Set, k, maxIter int, eps float64, src random.Source) (res *Result, err error) {
	start := time.Now()
	logger := e.opts.logger.WithK(k)
	if ps != nil {
		logger = logger.WithCount(ps.Len()).WithDimension(ps.Dim())
	}
	defer func() {
		e.opts.metricsCollector.RecordRun(time.Since(start), err)
		logger.LogRun(ctx, inertiaOf(res), err)
	}()

	// Refinement preconditions are checked up front so a bad maxIter or eps
	// fails before the source is touched.
	if maxIter <= 0 {
		return nil, translateError(fmt.Errorf("%w: %d", kmeans.ErrInvalidMaxIter, maxIter))
	}
	if eps < 0 || math.IsNaN(eps) {
		return nil, translateError(fmt.Errorf("%w: %v", kmeans.ErrInvalidEpsilon, eps))
	}

	seeded, err := e.seed(ctx, ps, k, src)
	if err != nil {
		return nil, err
	}

	ids := kmeans.IDs(seeded)
	for _, id := range ids {
		if _, err := ps.Index(id); err != nil {
			return nil, translateError(err)
		}
	}

	refined, err := e.refine(ctx, ps, kmeans.Coords(seeded), maxIter, eps)
	if err != nil {
		return nil, err
	}

	return &Result{
		Centroids:  refined.Centroids,
		InitialIDs: ids,
		Iterations: refined.Iterations,
		Converged:  refined.Converged,
		Inertia:    refined.Inertia,
	}, nil
}

// Seed runs k-means++ seeding only.
func (e *Engine) Seed(ctx context.Context, ps *pointset.Set, k int, src random.Source) (*SeedResult, error) {
	seeded, err := e.seed(ctx, ps, k, src)
	if err != nil {
		return nil, err
	}
	return &SeedResult{
		Centroids: kmeans.Coords(seeded),
		IDs:       kmeans.IDs(seeded),
	}, nil
}

// Refine runs Lloyd refinement only, starting from initial.
// initial is not modified.
func (e *Engine) Refine(ctx context.Context, ps *pointset.Set, initial [][]float64, maxIter int, eps float64) (*Result, error) {
	refined, err := e.refine(ctx, ps, initial, maxIter, eps)
	if err != nil {
		return nil, err
	}
	return &Result{
		Centroids:  refined.Centroids,
		Iterations: refined.Iterations,
		Converged:  refined.Converged,
		Inertia:    refined.Inertia,
	}, nil
}

// Assign labels every point of ps with the index of its nearest centroid.
func (e *Engine) Assign(ps *pointset.Set, centroids [][]float64) ([]int, error) {
	if ps == nil || ps.Len() == 0 {
		return nil, translateError(pointset.ErrEmpty)
	}
	if len(centroids) == 0 {
		return nil, translateError(fmt.Errorf("%w: no centroids", kmeans.ErrInvalidK))
	}
	for j, c := range centroids {
		if len(c) != ps.Dim() {
			return nil, translateError(&kmeans.ErrDimensionMismatch{Centroid: j, Expected: ps.Dim(), Actual: len(c)})
		}
	}
	return kmeans.Assign(ps, centroids), nil
}

func (e *Engine) seed(ctx context.Context, ps *pointset.Set, k int, src random.Source) ([]kmeans.Centroid, error) {
	start := time.Now()

	var kopts []kmeans.Option
	kopts = append(kopts, kmeans.WithLogger(e.opts.logger.Logger))
	if e.opts.uniformFallback {
		kopts = append(kopts, kmeans.WithUniformFallback())
	}

	seeded, err := kmeans.Seed(ps, k, src, kopts...)
	err = translateError(err)

	e.opts.metricsCollector.RecordSeed(k, time.Since(start), err)
	e.opts.logger.LogSeed(ctx, k, kmeans.IDs(seeded), err)

	return seeded, err
}

func (e *Engine) refine(ctx context.Context, ps *pointset.Set, initial [][]float64, maxIter int, eps float64) (*kmeans.Result, error) {
	start := time.Now()

	refined, err := kmeans.Refine(ctx, ps, initial, maxIter, eps,
		kmeans.WithWorkers(e.opts.workers),
		kmeans.WithLogger(e.opts.logger.Logger),
	)
	err = translateError(err)

	var (
		iterations int
		converged  bool
	)
	if refined != nil {
		iterations, converged = refined.Iterations, refined.Converged
	}
	e.opts.metricsCollector.RecordRefine(iterations, converged, time.Since(start), err)
	e.opts.logger.LogRefine(ctx, iterations, converged, err)

	return refined, err
}

func inertiaOf(res *Result) float64 {
	if res == nil {
		return 0
	}
	return res.Inertia
}

// Run is New().Run with default options.
func Run(ctx context.Context, ps *pointset.Set, k, maxIter int, eps float64, src random.Source) (*Result, error) {
	return New().Run(ctx, ps, k, maxIter, eps, src)
}

// Seed is New().Seed with default options.
func Seed(ctx context.Context, ps *pointset.Set, k int, src random.Source) (*SeedResult, error) {
	return New().Seed(ctx, ps, k, src)
}

// Refine is New().Refine with default options.
func Refine(ctx context.Context, ps *pointset.Set, initial [][]float64, maxIter int, eps float64) (*Result, error) {
	return New().Refine(ctx, ps, initial, maxIter, eps)
}

// NewPointSet validates points and builds a point set. Validation errors
// wrap ErrGeneric.
func NewPointSet(points []pointset.Point) (*pointset.Set, error) {
	ps, err := pointset.New(points)
	if err != nil {
		return nil, translateError(err)
	}
	return ps, nil
}
