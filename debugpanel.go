package wirescape

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Panel layout in viewport pixels.
const (
	panelWidth       = 300
	panelTitleHeight = 18
	panelRowHeight   = 18
	panelLabelWidth  = 150
	panelPadding     = 4
)

var (
	panelBackground = color.RGBA{0, 0, 0, 160}
	panelTitleBar   = color.RGBA{40, 40, 40, 220}
	panelTrack      = color.RGBA{90, 90, 90, 255}
	panelFill       = color.RGBA{70, 150, 220, 255}
)

// Slider edits one float32 in place.
type Slider struct {
	Label          string
	Min, Max, Step float32
	target         *float32
}

// Value returns the bound value.
func (s *Slider) Value() float32 {
	return *s.target
}

// Set clamps v to [Min, Max], snaps it to the nearest Step above Min and
// writes it to the bound value.
func (s *Slider) Set(v float32) {
	v = max(s.Min, min(s.Max, v))
	if s.Step > 0 {
		n := math.Round(float64(v-s.Min) / float64(s.Step))
		v = max(s.Min, min(s.Max, s.Min+float32(n)*s.Step))
	}
	*s.target = v
}

// fraction returns the value's position in [Min, Max] as 0..1.
func (s *Slider) fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return clamp01(float64(*s.target-s.Min) / float64(s.Max-s.Min))
}

// DebugPanel is a draggable list of sliders for live-tuning scene
// parameters. Pointer input that lands on a visible panel is consumed.
type DebugPanel struct {
	X, Y    float64
	Visible bool

	sliders []*Slider

	active       int // slider being dragged, -1 for none
	moving       bool
	grabX, grabY float64
	wasPressed   bool

	img *ebiten.Image
}

// NewDebugPanel creates a visible, empty panel at (x, y).
func NewDebugPanel(x, y float64) *DebugPanel {
	return &DebugPanel{X: x, Y: y, Visible: true, active: -1}
}

// Bind registers a slider over target.
func (p *DebugPanel) Bind(target *float32, label string, lo, hi, step float32) *Slider {
	s := &Slider{Label: label, Min: lo, Max: hi, Step: step, target: target}
	p.sliders = append(p.sliders, s)
	return s
}

// Sliders returns the bound sliders in registration order.
func (p *DebugPanel) Sliders() []*Slider {
	return p.sliders
}

// Toggle shows or hides the panel.
func (p *DebugPanel) Toggle() {
	p.Visible = !p.Visible
	p.active = -1
	p.moving = false
}

// Bounds returns the panel rectangle in viewport pixels.
func (p *DebugPanel) Bounds() Rect {
	return Rect{
		X:      p.X,
		Y:      p.Y,
		Width:  panelWidth,
		Height: panelTitleHeight + float64(len(p.sliders))*panelRowHeight,
	}
}

func (p *DebugPanel) trackBounds(row int) Rect {
	return Rect{
		X:      p.X + panelLabelWidth,
		Y:      p.Y + panelTitleHeight + float64(row)*panelRowHeight + panelPadding,
		Width:  panelWidth - panelLabelWidth - panelPadding,
		Height: panelRowHeight - 2*panelPadding,
	}
}

func (p *DebugPanel) setFromX(row int, x float64) {
	s := p.sliders[row]
	tr := p.trackBounds(row)
	f := clamp01((x - tr.X) / tr.Width)
	s.Set(s.Min + float32(f)*(s.Max-s.Min))
}

// HandlePointer feeds one frame of pointer state to the panel and reports
// whether the panel consumed it. A press that starts on the title bar moves
// the panel; a press on a row drags that row's slider until release.
func (p *DebugPanel) HandlePointer(x, y float64, pressed bool) bool {
	justPressed := pressed && !p.wasPressed
	p.wasPressed = pressed
	if !p.Visible {
		return false
	}
	if !pressed {
		consumed := p.active >= 0 || p.moving
		p.active = -1
		p.moving = false
		return consumed
	}
	switch {
	case p.active >= 0:
		p.setFromX(p.active, x)
		return true
	case p.moving:
		p.X = x - p.grabX
		p.Y = y - p.grabY
		return true
	case !justPressed:
		return false
	}

	b := p.Bounds()
	if !b.Contains(x, y) {
		return false
	}
	if y < p.Y+panelTitleHeight {
		p.moving = true
		p.grabX = x - p.X
		p.grabY = y - p.Y
		return true
	}
	row := int((y - p.Y - panelTitleHeight) / panelRowHeight)
	if row >= 0 && row < len(p.sliders) {
		p.active = row
		p.setFromX(row, x)
	}
	return true
}

func fillRect(dst *ebiten.Image, r Rect, c color.Color) {
	if r.Width < 1 || r.Height < 1 {
		return
	}
	sub := dst.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))).(*ebiten.Image)
	sub.Fill(c)
}

// Draw renders the panel at logical size and composites it scaled by
// pixelRatio onto screen.
func (p *DebugPanel) Draw(screen *ebiten.Image, pixelRatio float64) {
	if !p.Visible || len(p.sliders) == 0 {
		return
	}
	b := p.Bounds()
	w, h := int(b.Width), int(b.Height)
	if p.img == nil || p.img.Bounds().Dx() != w || p.img.Bounds().Dy() != h {
		if p.img != nil {
			p.img.Deallocate()
		}
		p.img = ebiten.NewImage(w, h)
	}
	img := p.img
	img.Fill(panelBackground)
	fillRect(img, Rect{Width: b.Width, Height: panelTitleHeight}, panelTitleBar)
	ebitenutil.DebugPrintAt(img, "parameters", panelPadding, 1)

	for i, s := range p.sliders {
		tr := p.trackBounds(i)
		tr.X -= p.X
		tr.Y -= p.Y
		fillRect(img, tr, panelTrack)
		fill := tr
		fill.Width = tr.Width * s.fraction()
		fillRect(img, fill, panelFill)
		rowY := panelTitleHeight + i*panelRowHeight + 1
		ebitenutil.DebugPrintAt(img, s.Label, panelPadding, rowY)
		ebitenutil.DebugPrintAt(img, fmt.Sprintf("%.2f", s.Value()), int(tr.X)+panelPadding, rowY)
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(pixelRatio, pixelRatio)
	op.GeoM.Translate(p.X*pixelRatio, p.Y*pixelRatio)
	screen.DrawImage(img, &op)
}
