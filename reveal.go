package wirescape

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/hajimehoshi/ebiten/v2"
)

// Reveal step sizes. Sharpening warms up slowly below revealKnee and then
// snaps to full; fading drops fast above the knee and trickles out below it.
const (
	revealKnee     = 0.2
	revealWarmUp   = 0.01
	revealSnap     = 0.1
	revealFastFade = 0.3
	revealSlowFade = 0.01
)

// RevealState is the sharpness of the preview image. Percent 0 is fully
// pixelated (hidden) and 1 is fully sharp; Target is 1 while a trigger is
// hovered and 0 otherwise.
type RevealState struct {
	ActiveImageIndex int
	Percent          float64
	Target           int
}

// Step advances Percent one frame toward Target. The arithmetic is not
// clamped: fading from just above the knee can land below zero (0.25 steps
// to -0.05), which draws nothing.
func (r *RevealState) Step() {
	if r.Target == 1 {
		if r.Percent < revealKnee {
			r.Percent += revealWarmUp
		} else if r.Percent < 1 {
			r.Percent += revealSnap
		}
		return
	}
	if r.Percent > revealKnee {
		r.Percent -= revealFastFade
	} else if r.Percent > 0 {
		r.Percent -= revealSlowFade
	}
}

// Activate shows image i and starts sharpening.
func (r *RevealState) Activate(i int) {
	r.ActiveImageIndex = i
	r.Target = 1
}

// Deactivate starts fading out.
func (r *RevealState) Deactivate() {
	r.Target = 0
}

// RevealEffect draws the active image into an offscreen surface, pixelated
// by the state's Percent, for display next to the pointer.
type RevealEffect struct {
	State  RevealState
	assets []*ImageAsset

	// DisplayWidth and DisplayHeight are the on-screen box in viewport
	// pixels. Zero uses the active image's own size.
	DisplayWidth, DisplayHeight float64

	surface  *ebiten.Image
	previous *ebiten.Image
	op       ebiten.DrawImageOptions
}

// NewRevealEffect creates an effect over the ordered asset list.
func NewRevealEffect(assets []*ImageAsset, displayW, displayH float64) *RevealEffect {
	return &RevealEffect{assets: assets, DisplayWidth: displayW, DisplayHeight: displayH}
}

// Assets returns the ordered asset list.
func (e *RevealEffect) Assets() []*ImageAsset {
	return e.assets
}

// Attach wires hover events: entering trigger i activates image i, leaving
// deactivates.
func (e *RevealEffect) Attach(l *TriggerList) (enter, leave CallbackHandle) {
	enter = l.OnEnter(func(ctx TriggerContext) { e.State.Activate(ctx.Index) })
	leave = l.OnLeave(func(TriggerContext) { e.State.Deactivate() })
	return enter, leave
}

func (e *RevealEffect) active() *ImageAsset {
	i := e.State.ActiveImageIndex
	if i < 0 || i >= len(e.assets) {
		return nil
	}
	return e.assets[i]
}

// Box returns the display box of the active image in viewport pixels.
func (e *RevealEffect) Box() (w, h float64) {
	a := e.active()
	if a == nil {
		return 0, 0
	}
	w, h = e.DisplayWidth, e.DisplayHeight
	if w <= 0 {
		w = float64(a.Width())
	}
	if h <= 0 {
		h = float64(a.Height())
	}
	return w, h
}

// Position returns the top-left of the surface in viewport pixels for the
// smoothed pointer. Both offsets use half the display width.
func (e *RevealEffect) Position(p PointerPosition) (x, y float64) {
	w, _ := e.Box()
	return p.CurrentX - w/2, p.CurrentY - w/2
}

// Surface returns the offscreen surface, nil before the first Render.
func (e *RevealEffect) Surface() *ebiten.Image {
	return e.surface
}

// ensureSurfaces (re)allocates the surface and its previous-contents buffer
// at w×h device pixels. Resizing discards the contents like a canvas resize.
func (e *RevealEffect) ensureSurfaces(w, h int) {
	if e.surface != nil {
		b := e.surface.Bounds()
		if b.Dx() == w && b.Dy() == h {
			e.surface.Clear()
			return
		}
		e.surface.Deallocate()
		e.previous.Deallocate()
	}
	e.surface = ebiten.NewImage(w, h)
	e.previous = ebiten.NewImage(w, h)
}

// revealPass names one draw of the reveal pipeline.
type revealPass uint8

const (
	passFull    revealPass = iota // active image to the whole surface
	passShrink                    // active image to the top-left grid
	passCopy                      // surface grid to previous, emptying the surface
	passStretch                   // previous grid to the whole surface
)

// revealDraw is one step of a reveal plan. Sizes are in device pixels; the
// source of passFull and passShrink is the whole active image.
type revealDraw struct {
	pass       revealPass
	srcW, srcH int
	dstW, dstH int
}

// revealPlan returns the draws that produce a w×h surface at percent
// sharpness, in order. Nothing is drawn at percent <= 0.
func revealPlan(w, h int, percent float64) []revealDraw {
	switch {
	case percent <= 0 || w <= 0 || h <= 0:
		return nil
	case percent >= 1:
		return []revealDraw{{pass: passFull, dstW: w, dstH: h}}
	}
	gw, gh := pixelGrid(w, h, percent)
	return []revealDraw{
		{pass: passShrink, dstW: gw, dstH: gh},
		{pass: passCopy, srcW: gw, srcH: gh, dstW: gw, dstH: gh},
		{pass: passStretch, srcW: gw, srcH: gh, dstW: w, dstH: h},
	}
}

// pixelGrid returns the whole-pixel size of the downscaled image. Both
// sides keep at least one pixel so the stretch always has a source.
func pixelGrid(w, h int, percent float64) (gw, gh int) {
	gw = max(1, int(math.Round(float64(w)*percent)))
	gh = max(1, int(math.Round(float64(h)*percent)))
	return gw, gh
}

// Render redraws the surface for the current state and returns it, or nil
// when there is nothing to show.
//
// Below full sharpness the image is drawn downscaled by Percent, then the
// surface's own contents are drawn back stretched to full size. Ebitengine
// cannot draw an image into itself, so the downscaled contents are copied to
// a separate buffer first and the stretch reads from that copy.
func (e *RevealEffect) Render(pixelRatio float64) *ebiten.Image {
	a := e.active()
	if a == nil {
		return nil
	}
	bw, bh := e.Box()
	sw := int(bw * pixelRatio)
	sh := int(bh * pixelRatio)
	if sw <= 0 || sh <= 0 {
		return nil
	}
	e.ensureSurfaces(sw, sh)

	op := &e.op
	op.Filter = ebiten.FilterNearest
	iw := float64(a.Width())
	ih := float64(a.Height())

	for _, d := range revealPlan(sw, sh, e.State.Percent) {
		op.GeoM.Reset()
		switch d.pass {
		case passFull, passShrink:
			op.GeoM.Scale(float64(d.dstW)/iw, float64(d.dstH)/ih)
			e.surface.DrawImage(a.Image, op)
		case passCopy:
			e.previous.Clear()
			e.previous.DrawImage(e.surface.SubImage(image.Rect(0, 0, d.srcW, d.srcH)).(*ebiten.Image), op)
			e.surface.Clear()
		case passStretch:
			region := e.previous.SubImage(image.Rect(0, 0, d.srcW, d.srcH)).(*ebiten.Image)
			op.GeoM.Scale(float64(d.dstW)/float64(d.srcW), float64(d.dstH)/float64(d.srcH))
			e.surface.DrawImage(region, op)
		}
	}
	return e.surface
}

// Draw renders the surface and composites it onto screen at the smoothed
// pointer position. screen is in device pixels.
func (e *RevealEffect) Draw(screen *ebiten.Image, pointer PointerPosition, pixelRatio float64) {
	surface := e.Render(pixelRatio)
	if surface == nil || e.State.Percent <= 0 {
		return
	}
	x, y := e.Position(pointer)
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(x*pixelRatio, y*pixelRatio)
	screen.DrawImage(surface, &op)
}

// Pixelate is the CPU form of the reveal: img downscaled by percent and
// scaled back to its own size with nearest-neighbour sampling. percent >= 1
// returns img unchanged and percent <= 0 a transparent image.
func Pixelate(img image.Image, percent float64) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if percent >= 1 {
		return img
	}
	if percent <= 0 || w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	dw, dh := pixelGrid(w, h, percent)
	small := transform.Resize(img, dw, dh, transform.NearestNeighbor)
	return transform.Resize(small, w, h, transform.NearestNeighbor)
}
