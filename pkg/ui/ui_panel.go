package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
	margin        = 10.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
	SetY(y float64)
}

// inside reports whether the pointer is over the x, y, w, h area, edges included.
func inside(mx, my int, x, y, w, h float64) bool {
	fx, fy := float64(mx), float64(my)
	return fx >= x && fx <= x+w && fy >= y && fy <= y+h
}

// UIPanel stacks labelled widgets in titled sections and scrolls them with the wheel.
type UIPanel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Widgets       []UIWidget
	Labels        []string
	ScrollOffset  float64
	Hidden        bool

	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
}

// PanelSection groups the widgets in [StartIndex, EndIndex).
type PanelSection struct {
	Title      string
	StartIndex int
	EndIndex   int
}

// NewUIPanel creates a new UI panel
func NewUIPanel(title string, x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section, closing the previous one.
func (p *UIPanel) AddSection(title string) {
	p.EndSection()
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

func (p *UIPanel) add(label string, w UIWidget) {
	if len(p.sections) == 0 {
		p.AddSection("")
	}
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	p.layout()
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, min, max, value)
	p.add(label, s)
	return s
}

// AddIntSlider adds a slider snapping to whole numbers.
func (p *UIPanel) AddIntSlider(label string, min, max, value int) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, float64(min), float64(max), float64(value))
	s.Step = 1
	s.Set(float64(value))
	p.add(label, s)
	return s
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.add(label, c)
	return c
}

// AddButton adds a full width button. It carries its own label.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.Width-2*margin, 20, label, onClick)
	p.add("", b)
	return b
}

// layout places every widget below its label, taking the scroll into account.
func (p *UIPanel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, section := range p.sections {
		y += sectionHeight
		for i := section.StartIndex; i < section.EndIndex; i++ {
			p.Widgets[i].SetY(y + labelHeight)
			y += p.Widgets[i].GetHeight()
		}
	}
}

// ContentHeight is the height of everything the panel holds when unscrolled.
func (p *UIPanel) ContentHeight() float64 {
	h := titleHeight + float64(len(p.sections))*sectionHeight
	for _, w := range p.Widgets {
		h += w.GetHeight()
	}
	return h
}

// Scroll moves the content by dy wheel units and clamps the offset.
func (p *UIPanel) Scroll(dy float64) {
	p.ScrollOffset -= dy * 20
	maxScroll := max(p.ContentHeight()-p.Height+40, 0)
	p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
	p.layout()
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	if p.Hidden {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.Scroll(dy)
	}
	for _, w := range p.Widgets {
		w.Update()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	visible := func(y float64) bool { return y >= p.Y+titleHeight-5 && y <= p.Y+p.Height-labelHeight }

	y := p.Y + titleHeight - p.ScrollOffset
	for _, section := range p.sections {
		if section.Title != "" && visible(y) {
			vector.FillRect(screen,
				float32(p.X+5), float32(y),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+margin), int(y+3))
		}
		y += sectionHeight
		for i := section.StartIndex; i < section.EndIndex; i++ {
			w := p.Widgets[i]
			if visible(y) {
				if p.Labels[i] != "" {
					ebitenutil.DebugPrintAt(screen, p.Labels[i], int(p.X+margin), int(y))
				}
				w.Draw(screen)
			}
			y += w.GetHeight()
		}
	}
}
