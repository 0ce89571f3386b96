package geometry

import "testing"

func TestRect_Overlaps(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", NewRect(2, 2, 2, 2), true},
		{"partial", NewRect(8, 8, 5, 5), true},
		{"touching edge", NewRect(10, 0, 5, 5), false},
		{"apart", NewRect(20, 20, 5, 5), false},
		{"covering", NewRect(-5, -5, 30, 30), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps(%v) = %v; want %v", tt.o, got, tt.want)
			}
			if got := tt.o.Overlaps(base); got != tt.want {
				t.Errorf("symmetric Overlaps(%v) = %v; want %v", tt.o, got, tt.want)
			}
		})
	}
}

func TestSquareAround(t *testing.T) {
	r := SquareAround(Vector2D{100, 50}, 10)
	if r != NewRect(90, 40, 20, 20) {
		t.Errorf("SquareAround = %v", r)
	}
}

func TestRect_ClosestEdge(t *testing.T) {
	r := NewRect(100, 100, 50, 200)
	tests := []struct {
		p    Vector2D
		want Edge
	}{
		{Vector2D{98, 200}, EdgeLeft},
		{Vector2D{153, 200}, EdgeRight},
		{Vector2D{125, 97}, EdgeTop},
		{Vector2D{125, 304}, EdgeBottom},
		// equidistant from left and top: left wins
		{Vector2D{99, 99}, EdgeLeft},
	}
	for _, tt := range tests {
		if got := r.ClosestEdge(tt.p); got != tt.want {
			t.Errorf("ClosestEdge(%v) = %v; want %v", tt.p, got, tt.want)
		}
	}
}

func TestEdge_ReflectAway(t *testing.T) {
	v := Vector2D{3, -4}
	tests := []struct {
		e    Edge
		want Vector2D
	}{
		{EdgeLeft, Vector2D{-3, -4}},
		{EdgeRight, Vector2D{3, -4}},
		{EdgeTop, Vector2D{3, -4}},
		{EdgeBottom, Vector2D{3, 4}},
	}
	for _, tt := range tests {
		if got := tt.e.ReflectAway(v); got != tt.want {
			t.Errorf("%v.ReflectAway(%v) = %v; want %v", tt.e, v, got, tt.want)
		}
	}
}
