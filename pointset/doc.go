// Package pointset holds the immutable input table of the clustering engine.
//
// A Set is an ordered sequence of points, each carrying a stable integer
// identifier and exactly Dim() coordinates. Sets are validated once on
// construction and are read-only afterwards; the engine never mutates them.
//
//	ps, err := pointset.New([]pointset.Point{
//	    {ID: 1, Coords: []float64{0, 0}},
//	    {ID: 2, Coords: []float64{0, 1}},
//	})
package pointset
