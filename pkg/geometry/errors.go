package geometry

import "errors"

// Contract violations. They signal a caller bug, never a recoverable state.
var (
	// ErrInvalidDimension is returned when an angle rotation is asked on a non-2D vector.
	ErrInvalidDimension = errors.New("rotation axis not defined for a non-2D vector")
	// ErrDimensionMismatch is returned when a rotation matrix is not square or not the vector's size.
	ErrDimensionMismatch = errors.New("rotation matrix must be square and match the vector dimension")
	// ErrDivisionByZero is returned when normalizing or measuring the argument of a zero vector.
	ErrDivisionByZero = errors.New("division by zero")
)
