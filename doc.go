// Package kmeanspp clusters a set of points with k-means: k-means++ seeding
// followed by Lloyd refinement.
//
// # Quick Start
//
//	ps, _ := pointset.New([]pointset.Point{
//	    {ID: 1, Coords: []float64{0, 0}},
//	    {ID: 2, Coords: []float64{0, 1}},
//	    {ID: 3, Coords: []float64{10, 0}},
//	    {ID: 4, Coords: []float64{10, 1}},
//	})
//	res, err := kmeanspp.Run(ctx, ps, 2, kmeanspp.DefaultMaxIter, 0.001, random.New(random.DefaultSeed))
//	fmt.Println(res.InitialIDs, res.Centroids)
//
// # Determinism
//
// Seeding draws from an explicit random.Source: exactly one uniform draw
// followed by k-1 weighted draws. The same point set, k and seed always give
// the same initial centroids, and refinement uses no randomness at all.
//
// # Refinement
//
// Each iteration assigns every point to its nearest centroid (squared
// Euclidean distance, ties to the lowest index), recomputes every centroid as
// the mean of its points, and stops once no centroid moved by eps or more.
// Empty clusters keep their previous centroid. WithWorkers parallelizes the
// assignment pass without changing results.
//
// # Errors
//
// Every error wraps one of two categories:
//
//	errors.Is(err, kmeanspp.ErrInvalidInput) // bad k, maxIter, eps; degenerate seeding
//	errors.Is(err, kmeanspp.ErrGeneric)      // empty or inconsistent point data
//
// Context cancellation is the exception: ctx.Err() is returned as is.
package kmeanspp
