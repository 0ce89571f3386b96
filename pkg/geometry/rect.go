package geometry

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewRect builds a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// SquareAround returns the square of side 2*halfSide centered on c.
func SquareAround(c Vector2D, halfSide float64) Rect {
	return Rect{X: c.X - halfSide, Y: c.Y - halfSide, W: 2 * halfSide, H: 2 * halfSide}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) String() string {
	return fmt.Sprintf("[%.1f,%.1f %.1fx%.1f]", r.X, r.Y, r.W, r.H)
}

// Overlaps reports whether the interiors intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Edge names one side of a Rect.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// ClosestEdge returns the side whose line is nearest to p.
// Distances are |p.X-left|, |p.X-right|, |p.Y-top|, |p.Y-bottom|;
// ties go to the first side in that order.
func (r Rect) ClosestEdge(p Vector2D) Edge {
	dists := [4]float64{
		math.Abs(p.X - r.Left()),
		math.Abs(p.X - r.Right()),
		math.Abs(p.Y - r.Top()),
		math.Abs(p.Y - r.Bottom()),
	}
	closest := EdgeLeft
	for e := EdgeRight; e <= EdgeBottom; e++ {
		if dists[e] < dists[closest] {
			closest = e
		}
	}
	return closest
}

// ReflectAway forces the component of v perpendicular to the edge to point
// out of the rectangle: negative for left/top, positive for right/bottom.
// The parallel component is kept.
func (e Edge) ReflectAway(v Vector2D) Vector2D {
	switch e {
	case EdgeLeft:
		v.X = -math.Abs(v.X)
	case EdgeRight:
		v.X = math.Abs(v.X)
	case EdgeTop:
		v.Y = -math.Abs(v.Y)
	case EdgeBottom:
		v.Y = math.Abs(v.Y)
	}
	return v
}
