package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestNewVectorN(t *testing.T) {
	if got := NewVectorN(); !got.Eq(Vector{0, 0}) {
		t.Errorf("NewVectorN() = %v; want (0, 0)", got)
	}
	src := []float64{1, 2, 3}
	v := NewVectorN(src...)
	src[0] = 9
	if v[0] != 1 {
		t.Errorf("NewVectorN shares its backing array with the input")
	}
	if v.Dim() != 3 {
		t.Errorf("Dim = %d; want 3", v.Dim())
	}
}

func TestVectorN_Arithmetic(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, 5, 6}

	sum, err := a.Add(b)
	if err != nil || !sum.Eq(Vector{5, 7, 9}) {
		t.Errorf("Add = %v, %v; want (5, 7, 9)", sum, err)
	}
	diff, err := b.Sub(a)
	if err != nil || !diff.Eq(Vector{3, 3, 3}) {
		t.Errorf("Sub = %v, %v; want (3, 3, 3)", diff, err)
	}
	dot, err := a.Dot(b)
	if err != nil || dot != 32 {
		t.Errorf("Dot = %v, %v; want 32", dot, err)
	}
	if _, err := a.Add(Vector{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Add mismatched err = %v; want ErrDimensionMismatch", err)
	}
	if got := (Vector{3, 4}).Norm(); got != 5 {
		t.Errorf("Norm = %v; want 5", got)
	}
}

func TestVectorN_Normalize(t *testing.T) {
	n, err := Vector{0, 3, 4}.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(n.Norm(), 1) {
		t.Errorf("|Normalize| = %v; want 1", n.Norm())
	}
	if _, err := (Vector{0, 0, 0}).Normalize(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Normalize(zero) err = %v; want ErrDivisionByZero", err)
	}
}

func TestVectorN_Rotate(t *testing.T) {
	got, err := Vector{1, 0}.Rotate(math.Pi / 2)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Eq(Vector{0, 1}) {
		t.Errorf("Rotate(π/2) = %v; want (0, 1)", got)
	}

	if _, err := (Vector{1, 0, 0}).Rotate(math.Pi); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Rotate 3D err = %v; want ErrInvalidDimension", err)
	}
}

func TestVectorN_RotateByMatrix(t *testing.T) {
	tests := []struct {
		name    string
		v       Vector
		m       Matrix
		want    Vector
		wantErr error
	}{
		{
			name: "3x3 product",
			v:    Vector{1, 2, 3},
			m:    Matrix{{1, 2, 3}, {-1, 0, 1}, {3, 4, 5}},
			want: Vector{14, 2, 26},
		},
		{
			name: "2D rotation matrix",
			v:    Vector{1, 0},
			m:    RotationMatrix2D(math.Pi / 2),
			want: Vector{0, 1},
		},
		{
			name:    "not square",
			v:       Vector{1, 2},
			m:       Matrix{{1, 0}, {0, 1, 0}},
			wantErr: ErrDimensionMismatch,
		},
		{
			name:    "wrong size",
			v:       Vector{1, 2, 3},
			m:       Matrix{{1, 0}, {0, 1}},
			wantErr: ErrDimensionMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.RotateByMatrix(tt.m)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Eq(tt.want) {
				t.Errorf("RotateByMatrix = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestVectorN_Vector2D(t *testing.T) {
	v, err := Vector{1, 2}.Vector2D()
	if err != nil || v != (Vector2D{1, 2}) {
		t.Errorf("Vector2D() = %v, %v; want (1, 2)", v, err)
	}
	if _, err := (Vector{1}).Vector2D(); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("1D Vector2D() err = %v; want ErrInvalidDimension", err)
	}
}
