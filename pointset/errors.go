package pointset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a set would contain no points.
	ErrEmpty = errors.New("point set is empty")

	// ErrPointNotFound is returned when an identifier is not part of the set.
	ErrPointNotFound = errors.New("point not found")
)

// ErrDimensionMismatch indicates a point whose coordinate count differs from
// the first point's.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("point %d: dimension mismatch: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrInvalidDimension indicates points without coordinates.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDuplicateID indicates two points sharing one identifier.
type ErrDuplicateID struct {
	ID int64
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate point id: %d", e.ID)
}
