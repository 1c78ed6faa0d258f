package dataset

import (
	"fmt"

	"github.com/hupe1980/kmeanspp"
)

var (
	// ErrInvalidPath is returned for a missing input file or one without a
	// .csv or .txt extension. It wraps kmeanspp.ErrInvalidInput.
	ErrInvalidPath = fmt.Errorf("%w: invalid input file", kmeanspp.ErrInvalidInput)

	// ErrMalformed is returned for unparseable table content. It wraps
	// kmeanspp.ErrGeneric.
	ErrMalformed = fmt.Errorf("%w: malformed table", kmeanspp.ErrGeneric)
)
