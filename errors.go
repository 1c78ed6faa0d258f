package kmeanspp

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
	"github.com/hupe1980/kmeanspp/pointset"
)

var (
	// ErrInvalidInput is the category of errors caused by bad parameters:
	// k out of range, negative epsilon, non-positive iteration cap, or a
	// degenerate seeding distribution.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneric is the category of errors caused by inconsistent data:
	// an empty point set, ragged dimensionality, duplicate identifiers, or
	// a seeded identifier that cannot be located.
	ErrGeneric = errors.New("an error has occurred")
)

// Re-exported causes; each is also wrapped in ErrInvalidInput or ErrGeneric.
var (
	ErrInvalidK          = kmeans.ErrInvalidK
	ErrInvalidMaxIter    = kmeans.ErrInvalidMaxIter
	ErrInvalidEpsilon    = kmeans.ErrInvalidEpsilon
	ErrDegenerateSeeding = kmeans.ErrDegenerateSeeding
	ErrEmpty             = pointset.ErrEmpty
	ErrPointNotFound     = pointset.ErrPointNotFound
)

// ErrDimensionMismatch indicates a point or centroid whose dimensionality
// differs from the rest of the input.
//
// It matches ErrGeneric, and the underlying cause is reachable with
// errors.As.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() []error { return []error{ErrGeneric, e.cause} }

// translateError maps internal errors onto the public categories.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Already categorized.
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrGeneric) {
		return err
	}

	// Dimension normalization.
	var pdm *pointset.ErrDimensionMismatch
	if errors.As(err, &pdm) {
		return &ErrDimensionMismatch{Expected: pdm.Expected, Actual: pdm.Actual, cause: err}
	}
	var kdm *kmeans.ErrDimensionMismatch
	if errors.As(err, &kdm) {
		return &ErrDimensionMismatch{Expected: kdm.Expected, Actual: kdm.Actual, cause: err}
	}

	switch {
	case errors.Is(err, kmeans.ErrInvalidK),
		errors.Is(err, kmeans.ErrInvalidMaxIter),
		errors.Is(err, kmeans.ErrInvalidEpsilon),
		errors.Is(err, kmeans.ErrDegenerateSeeding),
		errors.Is(err, kmeans.ErrNilSource):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var dup *pointset.ErrDuplicateID
	var inv *pointset.ErrInvalidDimension
	switch {
	case errors.Is(err, pointset.ErrEmpty),
		errors.Is(err, pointset.ErrPointNotFound),
		errors.As(err, &dup),
		errors.As(err, &inv):
		return fmt.Errorf("%w: %w", ErrGeneric, err)
	}

	return err
}
