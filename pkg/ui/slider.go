package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a horizontal bar setting a value in [Min, Max] by clicking or
// dragging. A non zero Step snaps the value to multiples of Step above Min.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	Step     float64
	X, Y     float64
	W, H     float64
}

// NewSlider creates a slider of default height.
func NewSlider(x, y, width float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     width,
		H:     12,
	}
	s.Set(value)
	return s
}

// Set clamps and snaps v before storing it.
func (s *Slider) Set(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	s.Value = math.Min(s.Max, math.Max(s.Min, v))
}

// Int returns the value rounded to the nearest integer.
func (s *Slider) Int() int { return int(math.Round(s.Value)) }

// HandlePointer updates the value from a pointer position.
func (s *Slider) HandlePointer(mx, my int, pressed bool) {
	if !pressed || !inside(mx, my, s.X, s.Y, s.W, s.H) || s.W <= 0 {
		return
	}
	p := (float64(mx) - s.X) / s.W
	s.Set(s.Min + p*(s.Max-s.Min))
}

func (s *Slider) Update() {
	mx, my := ebiten.CursorPosition()
	s.HandlePointer(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, s.format(), int(s.X+s.W-48), int(s.Y-16))
}

func (s *Slider) format() string {
	if s.Step >= 1 {
		return fmt.Sprintf("%6d", s.Int())
	}
	return fmt.Sprintf("%6.2f", s.Value)
}

func (s *Slider) GetHeight() float64 {
	return s.H + 25 // slider height + label space
}

func (s *Slider) SetY(y float64) { s.Y = y }
