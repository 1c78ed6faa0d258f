// Package testutil provides testing utilities for kmeanspp.
//
// It provides helpers for generating random point sets and test doubles
// for random.Source. The generators also back the generate command of
// cmd/kmeanspp.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	ps := rng.UniformPoints(100, 2)               // uniform [0, 1)
//	ps := rng.ClusteredPoints(300, 2, 3, 10, 0.5) // 3 blobs
//
// # Random Source Doubles
//
//	src := &testutil.CountingSource{Source: random.New(0)}
//	src := &testutil.ArgmaxSource{}
package testutil
