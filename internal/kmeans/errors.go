package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not in (0, n).
	ErrInvalidK = errors.New("invalid number of clusters")

	// ErrInvalidMaxIter is returned when maxIter is not positive.
	ErrInvalidMaxIter = errors.New("invalid maximum iteration")

	// ErrInvalidEpsilon is returned when eps is negative or NaN.
	ErrInvalidEpsilon = errors.New("invalid epsilon")

	// ErrDegenerateSeeding is returned when every remaining selection weight
	// is zero before k centroids are chosen.
	ErrDegenerateSeeding = errors.New("degenerate seeding distribution")

	// ErrNilSource is returned when Seed is called without a random source.
	ErrNilSource = errors.New("random source is nil")
)

// ErrDimensionMismatch indicates a centroid whose dimension differs from
// the point set's.
type ErrDimensionMismatch struct {
	Centroid int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("centroid %d: dimension mismatch: expected %d, got %d", e.Centroid, e.Expected, e.Actual)
}
