// Package distance provides the Euclidean distance kernels used by the
// clustering engine.
//
// # Supported Functions
//
//   - SquaredL2: squared Euclidean distance, used for every comparison
//   - L2: rooted Euclidean distance, used where the natural unit matters
//     (centroid movement against the convergence tolerance)
//
// # Usage
//
//	d2 := distance.SquaredL2(a, b)
//	d := distance.L2(a, b)
package distance
