package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Vector is an N-dimensional vector. Operations never modify the receiver.
type Vector []float64

// Matrix is a row-major matrix, one slice per row.
type Matrix [][]float64

// NewVectorN copies values into a new Vector. No argument gives the 2D zero vector.
func NewVectorN(values ...float64) Vector {
	if len(values) == 0 {
		return Vector{0, 0}
	}
	v := make(Vector, len(values))
	copy(v, values)
	return v
}

// RotationMatrix2D returns the matrix rotating a 2D vector by theta radians.
func RotationMatrix2D(theta float64) Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return Matrix{
		{c, -s},
		{s, c},
	}
}

// Dim returns the number of components.
func (v Vector) Dim() int {
	return len(v)
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf("%.2f", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (v Vector) sameDim(other Vector) error {
	if len(v) != len(other) {
		return fmt.Errorf("vectors of dimension %d and %d: %w", len(v), len(other), ErrDimensionMismatch)
	}
	return nil
}

// Add returns v + other.
func (v Vector) Add(other Vector) (Vector, error) {
	if err := v.sameDim(other); err != nil {
		return nil, err
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + other[i]
	}
	return out, nil
}

// Sub returns v - other.
func (v Vector) Sub(other Vector) (Vector, error) {
	if err := v.sameDim(other); err != nil {
		return nil, err
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - other[i]
	}
	return out, nil
}

// Mul scales every component.
func (v Vector) Mul(scalar float64) Vector {
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = c * scalar
	}
	return out
}

// Dot returns the dot product.
func (v Vector) Dot(other Vector) (float64, error) {
	if err := v.sameDim(other); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range v {
		sum += v[i] * other[i]
	}
	return sum, nil
}

// Norm returns the euclidean length.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// Normalize returns the unit vector, or ErrDivisionByZero for a zero vector.
func (v Vector) Normalize() (Vector, error) {
	n := v.Norm()
	if n == 0 {
		return nil, fmt.Errorf("normalize %s: %w", v, ErrDivisionByZero)
	}
	return v.Mul(1 / n), nil
}

// Rotate rotates a 2D vector by theta radians.
func (v Vector) Rotate(theta float64) (Vector, error) {
	if len(v) != 2 {
		return nil, fmt.Errorf("rotate %dD vector: %w", len(v), ErrInvalidDimension)
	}
	r := Vector2D{X: v[0], Y: v[1]}.Rotate(theta)
	return Vector{r.X, r.Y}, nil
}

// RotateByMatrix returns m·v. The matrix must be square with the vector's dimension.
func (v Vector) RotateByMatrix(m Matrix) (Vector, error) {
	if len(m) != len(v) {
		return nil, fmt.Errorf("%d-row matrix for %dD vector: %w", len(m), len(v), ErrDimensionMismatch)
	}
	out := make(Vector, len(v))
	for i, row := range m {
		if len(row) != len(v) {
			return nil, fmt.Errorf("row %d has %d columns for %dD vector: %w", i, len(row), len(v), ErrDimensionMismatch)
		}
		for j, c := range row {
			out[i] += c * v[j]
		}
	}
	return out, nil
}

// Vector2D converts a 2D Vector to the value type used by the simulation.
func (v Vector) Vector2D() (Vector2D, error) {
	if len(v) != 2 {
		return Vector2D{}, fmt.Errorf("convert %dD vector: %w", len(v), ErrInvalidDimension)
	}
	return Vector2D{X: v[0], Y: v[1]}, nil
}

// Eq reports approximate equality within Epsilon.
func (v Vector) Eq(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-other[i]) > Epsilon {
			return false
		}
	}
	return true
}
