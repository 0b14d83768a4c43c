package analysis

import "errors"

var (
	// ErrNotFitted is returned when Transform is called before Fit.
	ErrNotFitted = errors.New("analysis: transformer not fitted")
	// ErrAlreadyFitted is returned by a second Fit; fitted parameters are frozen.
	ErrAlreadyFitted = errors.New("analysis: transformer already fitted")
	// ErrDimensionMismatch is returned when a matrix does not match the fitted width.
	ErrDimensionMismatch = errors.New("analysis: dimension mismatch")
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("analysis: missing column")
	// ErrSingleClass is returned when an operation needs both label classes present.
	ErrSingleClass = errors.New("analysis: only one class present")
)
