package geometry

import (
	"fmt"
	"math"
)

// Epsilon Precision constant used by the approximate comparisons.
const (
	Epsilon = 1e-9
	TwoPi   = 2 * math.Pi
)

// UnitX is the reference axis for Argument.
var UnitX = Vector2D{X: 1, Y: 0}

// Vector2D represents a 2D vector or point in cartesian space.
// Fields are public because they are plain data: v := Vector2D{1, 2}.
// With screen coordinates (Y pointing down) a positive rotation is clockwise.
type Vector2D struct {
	X float64 `json:"x" protobuf:"x,1"`
	Y float64 `json:"y" protobuf:"y,2"`
}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar creates a new Vector2D from polar coordinates.
// theta is in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	// Handle standard floating point precision issues near zero
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, every method returns a new value.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Neg returns the opposite vector.
func (v Vector2D) Neg() Vector2D {
	return Vector2D{-v.X, -v.Y}
}

// MulVec multiplies the vectors component by component.
func (v Vector2D) MulVec(other Vector2D) Vector2D {
	return Vector2D{v.X * other.X, v.Y * other.Y}
}

// DivVec divides the vectors component by component.
// A zero component in other yields ErrDivisionByZero.
func (v Vector2D) DivVec(other Vector2D) (Vector2D, error) {
	if other.X == 0 || other.Y == 0 {
		return Vector2D{math.Inf(1), math.Inf(1)}, fmt.Errorf("component-wise division by %s: %w", other, ErrDivisionByZero)
	}
	return Vector2D{v.X / other.X, v.Y / other.Y}, nil
}

// Div scales the vector by 1/scalar.
// if scalar is zero it returns a math.Inf vector and ErrDivisionByZero.
func (v Vector2D) Div(scalar float64) (Vector2D, error) {
	if scalar == 0 {
		return Vector2D{math.Inf(1), math.Inf(1)}, fmt.Errorf("vector divided by zero: %w", ErrDivisionByZero)
	}
	return Vector2D{v.X / scalar, v.Y / scalar}, nil
}

// ---------------------------------------------------------------------
// Vector2D Products
// ---------------------------------------------------------------------

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (norm) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns a unit vector in the same direction.
// The zero vector has no direction and yields ErrDivisionByZero.
func (v Vector2D) Normalize() (Vector2D, error) {
	l := v.Len()
	if l == 0 {
		return Vector2D{}, fmt.Errorf("normalize %s: %w", v, ErrDivisionByZero)
	}
	return Vector2D{v.X / l, v.Y / l}, nil
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Argument returns the angle from the positive X axis, clockwise on screen,
// in [0, 2π). It is computed from acos(UnitX·v / |v|) and mirrored into
// [π, 2π) when Y is negative.
func (v Vector2D) Argument() (float64, error) {
	l := v.Len()
	if l == 0 {
		return 0, fmt.Errorf("argument of %s: %w", v, ErrDivisionByZero)
	}
	// clamp: rounding can push the ratio slightly outside acos' domain
	c := math.Max(-1, math.Min(1, UnitX.Dot(v)/l))
	arg := math.Acos(c)
	if v.Y < 0 {
		arg = TwoPi - arg
	}
	if arg >= TwoPi {
		arg -= TwoPi
	}
	return arg, nil
}

// AngleTo returns (arg(v) - arg(other)) mod 2π, in [0, 2π).
func (v Vector2D) AngleTo(other Vector2D) (float64, error) {
	a, err := v.Argument()
	if err != nil {
		return 0, err
	}
	b, err := other.Argument()
	if err != nil {
		return 0, err
	}
	return WrapAngle(a - b), nil
}

// Rotate rotates the vector by angle (in radians) around the origin (0,0).
func (v Vector2D) Rotate(angle float64) Vector2D {
	cosTheta := math.Cos(angle)
	sinTheta := math.Sin(angle)
	return Vector2D{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// WrapAngle maps any angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// EqTol is Eq with a caller supplied tolerance.
func (v Vector2D) EqTol(other Vector2D, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol
}
