package pointset

import (
	"fmt"
	"slices"
)

// Point is a single input row.
type Point struct {
	ID     int64
	Coords []float64
}

// Set is an immutable, ordered collection of points of uniform dimension.
type Set struct {
	ids    []int64
	coords [][]float64
	dim    int
	byID   map[int64]int
}

// New validates points and builds a Set.
//
// Validation runs over the whole input before anything is copied:
// an empty input returns ErrEmpty, a point without coordinates returns
// *ErrInvalidDimension, a ragged row returns *ErrDimensionMismatch and a
// repeated identifier returns *ErrDuplicateID.
func New(points []Point) (*Set, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}

	dim := len(points[0].Coords)
	if dim == 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}

	byID := make(map[int64]int, len(points))
	for i, p := range points {
		if len(p.Coords) != dim {
			return nil, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(p.Coords)}
		}
		if _, ok := byID[p.ID]; ok {
			return nil, &ErrDuplicateID{ID: p.ID}
		}
		byID[p.ID] = i
	}

	// Single backing array keeps rows contiguous.
	data := make([]float64, len(points)*dim)
	s := &Set{
		ids:    make([]int64, len(points)),
		coords: make([][]float64, len(points)),
		dim:    dim,
		byID:   byID,
	}
	for i, p := range points {
		row := data[i*dim : (i+1)*dim : (i+1)*dim]
		copy(row, p.Coords)
		s.ids[i] = p.ID
		s.coords[i] = row
	}

	return s, nil
}

// FromRows builds a Set whose identifiers are the row positions 0..N-1.
func FromRows(rows [][]float64) (*Set, error) {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{ID: int64(i), Coords: r}
	}
	return New(points)
}

// Len returns the number of points.
func (s *Set) Len() int { return len(s.ids) }

// Dim returns the number of coordinates per point.
func (s *Set) Dim() int { return s.dim }

// ID returns the identifier of the i-th point.
func (s *Set) ID(i int) int64 { return s.ids[i] }

// Coords returns the coordinates of the i-th point.
// The returned slice is shared with the set and must not be modified.
func (s *Set) Coords(i int) []float64 { return s.coords[i] }

// At returns a copy of the i-th point.
func (s *Set) At(i int) Point {
	return Point{ID: s.ids[i], Coords: slices.Clone(s.coords[i])}
}

// Rows returns all coordinate rows in insertion order.
// The rows are shared with the set and must not be modified.
func (s *Set) Rows() [][]float64 { return s.coords }

// IDs returns a copy of all identifiers in insertion order.
func (s *Set) IDs() []int64 { return slices.Clone(s.ids) }

// Index returns the position of the point with the given identifier.
func (s *Set) Index(id int64) (int, error) {
	i, ok := s.byID[id]
	if !ok {
		return -1, fmt.Errorf("%w: id %d", ErrPointNotFound, id)
	}
	return i, nil
}
