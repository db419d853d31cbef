package wirescape

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"
)

var triggerBackground = color.RGBA{20, 20, 20, 230}

// Trigger is one hoverable item of the ordered trigger list. Trigger i
// previews image i.
type Trigger struct {
	Index  int
	Label  string
	Bounds Rect

	// Opacity and ZIndex are written by the dimming behaviour.
	Opacity float64
	ZIndex  int

	fade  *TweenGroup
	image *ebiten.Image // rendered label, built lazily
}

// TriggerContext carries hover event data.
type TriggerContext struct {
	Trigger *Trigger
	Index   int
	X, Y    float64
}

// TriggerList is the fixed, ordered list of hover targets. It turns pointer
// positions into enter/leave events.
type TriggerList struct {
	items    []*Trigger
	hovered  int
	handlers handlerRegistry
}

// NewTriggerList lays labels out top to bottom starting at (x, y).
func NewTriggerList(labels []string, x, y, itemW, itemH, gap float64) *TriggerList {
	l := &TriggerList{hovered: -1}
	for i, label := range labels {
		l.items = append(l.items, &Trigger{
			Index:   i,
			Label:   label,
			Bounds:  Rect{X: x, Y: y + float64(i)*(itemH+gap), Width: itemW, Height: itemH},
			Opacity: 1,
		})
	}
	return l
}

// Len returns the number of triggers.
func (l *TriggerList) Len() int {
	return len(l.items)
}

// At returns trigger i.
func (l *TriggerList) At(i int) *Trigger {
	return l.items[i]
}

// Hovered returns the index of the hovered trigger, or -1.
func (l *TriggerList) Hovered() int {
	return l.hovered
}

// OnEnter registers a callback fired when the pointer enters a trigger.
func (l *TriggerList) OnEnter(fn func(TriggerContext)) CallbackHandle {
	return l.handlers.add(EventPointerEnter, fn)
}

// OnLeave registers a callback fired when the pointer leaves a trigger.
func (l *TriggerList) OnLeave(fn func(TriggerContext)) CallbackHandle {
	return l.handlers.add(EventPointerLeave, fn)
}

// hitTest returns the topmost trigger containing (x, y), or -1. Higher
// ZIndex wins; among equal ZIndex the later trigger wins.
func (l *TriggerList) hitTest(x, y float64) int {
	best := -1
	for i, t := range l.items {
		if !t.Bounds.Contains(x, y) {
			continue
		}
		if best < 0 || t.ZIndex >= l.items[best].ZIndex {
			best = i
		}
	}
	return best
}

// Update hit-tests the pointer and fires leave for the previous trigger
// before enter for the new one.
func (l *TriggerList) Update(x, y float64) {
	hit := l.hitTest(x, y)
	if hit == l.hovered {
		return
	}
	if l.hovered >= 0 {
		prev := l.hovered
		l.hovered = -1
		l.handlers.fire(EventPointerLeave, TriggerContext{Trigger: l.items[prev], Index: prev, X: x, Y: y})
	}
	if hit >= 0 {
		l.hovered = hit
		l.handlers.fire(EventPointerEnter, TriggerContext{Trigger: l.items[hit], Index: hit, X: x, Y: y})
	}
}

// paintOrder returns the triggers sorted by ZIndex, stable in list order.
func (l *TriggerList) paintOrder() []*Trigger {
	out := make([]*Trigger, len(l.items))
	copy(out, l.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// labelImage renders the trigger's label once at its logical size.
func (t *Trigger) labelImage() *ebiten.Image {
	if t.image != nil {
		return t.image
	}
	w, h := max(1, int(t.Bounds.Width)), max(1, int(t.Bounds.Height))
	t.image = ebiten.NewImage(w, h)
	t.image.Fill(triggerBackground)
	ebitenutil.DebugPrintAt(t.image, t.Label, 8, (h-16)/2)
	return t.image
}

// Draw composites every trigger in ZIndex order at its current opacity.
// screen is in device pixels.
func (l *TriggerList) Draw(screen *ebiten.Image, pixelRatio float64) {
	var op ebiten.DrawImageOptions
	for _, t := range l.paintOrder() {
		if t.Opacity <= 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(pixelRatio, pixelRatio)
		op.GeoM.Translate(t.Bounds.X*pixelRatio, t.Bounds.Y*pixelRatio)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(t.Opacity))
		screen.DrawImage(t.labelImage(), &op)
	}
}

// Dimmer fades every trigger except the hovered one to DimOpacity and
// restores full opacity on leave. It runs independently of the reveal.
type Dimmer struct {
	list       *TriggerList
	DimOpacity float64
	Duration   float32
	Ease       ease.TweenFunc

	enter, leave CallbackHandle
}

// NewDimmer attaches a dimming behaviour to l.
func NewDimmer(l *TriggerList, dimOpacity float64, duration float32) *Dimmer {
	d := &Dimmer{list: l, DimOpacity: dimOpacity, Duration: duration, Ease: ease.OutQuad}
	d.enter = l.OnEnter(d.onEnter)
	d.leave = l.OnLeave(d.onLeave)
	return d
}

// Detach stops reacting to hover events.
func (d *Dimmer) Detach() {
	d.enter.Remove()
	d.leave.Remove()
}

func (d *Dimmer) onEnter(ctx TriggerContext) {
	for _, t := range d.list.items {
		if t.Index == ctx.Index {
			t.ZIndex = 1
			t.fade = TweenOpacity(t, 1, d.Duration, d.Ease)
			continue
		}
		t.ZIndex = 0
		t.fade = TweenOpacity(t, d.DimOpacity, d.Duration, d.Ease)
	}
}

func (d *Dimmer) onLeave(TriggerContext) {
	for _, t := range d.list.items {
		t.ZIndex = 0
		t.fade = TweenOpacity(t, 1, d.Duration, d.Ease)
	}
}

// Update advances running fades by dt seconds.
func (d *Dimmer) Update(dt float32) {
	for _, t := range d.list.items {
		if t.fade != nil {
			t.fade.Update(dt)
			if t.fade.Done {
				t.fade = nil
			}
		}
	}
}
