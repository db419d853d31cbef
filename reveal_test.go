package wirescape

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/anthonynsimon/bild/transform"
)

func TestRevealStepUp(t *testing.T) {
	tests := []struct {
		from, want float64
	}{
		{0, 0.01},
		{0.15, 0.16},
		{0.25, 0.35},
		{0.95, 1.05},
	}
	for _, tt := range tests {
		r := RevealState{Percent: tt.from, Target: 1}
		r.Step()
		if math.Abs(r.Percent-tt.want) > 1e-9 {
			t.Errorf("step up from %v = %v, want %v", tt.from, r.Percent, tt.want)
		}
	}
}

func TestRevealStepDown(t *testing.T) {
	tests := []struct {
		from, want float64
	}{
		{1, 0.7},
		{0.25, -0.05},
		{0.15, 0.14},
		{0.005, -0.005},
	}
	for _, tt := range tests {
		r := RevealState{Percent: tt.from, Target: 0}
		r.Step()
		if math.Abs(r.Percent-tt.want) > 1e-9 {
			t.Errorf("step down from %v = %v, want %v", tt.from, r.Percent, tt.want)
		}
	}
}

func TestRevealStepIdleAtLimits(t *testing.T) {
	up := RevealState{Percent: 1, Target: 1}
	up.Step()
	if up.Percent != 1 {
		t.Errorf("sharp image stepped to %v", up.Percent)
	}

	down := RevealState{Percent: -0.05, Target: 0}
	down.Step()
	if down.Percent != -0.05 {
		t.Errorf("hidden image stepped to %v", down.Percent)
	}
}

func TestRevealSharpensThenFades(t *testing.T) {
	r := RevealState{}
	r.Activate(2)
	if r.ActiveImageIndex != 2 || r.Target != 1 {
		t.Fatalf("after Activate(2): %+v", r)
	}

	frames := 0
	for r.Percent < 1 {
		r.Step()
		frames++
		if frames >= 50 {
			t.Fatal("never reached full sharpness")
		}
	}
	// 20 warm-up steps of 0.01, then steps of 0.1.
	if frames < 28 {
		t.Errorf("sharpened in %d frames, want at least 28", frames)
	}

	r.Deactivate()
	if r.Target != 0 {
		t.Errorf("target = %d after Deactivate", r.Target)
	}
	if r.ActiveImageIndex != 2 {
		t.Errorf("leave dropped the image: index %d", r.ActiveImageIndex)
	}
	frames = 0
	for r.Percent > 0 {
		r.Step()
		frames++
		if frames >= 50 {
			t.Fatal("never faded out")
		}
	}
}

func TestRevealPosition(t *testing.T) {
	e := NewRevealEffect(PlaceholderImages(1, 64, 40), 320, 200)
	x, y := e.Position(PointerPosition{CurrentX: 500, CurrentY: 300})
	// Both offsets use half the display width.
	if x != 340 || y != 140 {
		t.Errorf("Position = (%v, %v), want (340, 140)", x, y)
	}
}

func TestRevealBoxFallsBackToImageSize(t *testing.T) {
	e := NewRevealEffect(PlaceholderImages(2, 64, 40), 0, 0)
	if w, h := e.Box(); w != 64 || h != 40 {
		t.Errorf("Box = %vx%v, want 64x40", w, h)
	}

	e.State.ActiveImageIndex = 5
	if w, h := e.Box(); w != 0 || h != 0 {
		t.Errorf("Box without an image = %vx%v, want 0x0", w, h)
	}
	if e.Render(1) != nil {
		t.Error("Render without an image should return nil")
	}
}

func TestRevealRenderSizesSurface(t *testing.T) {
	e := NewRevealEffect(PlaceholderImages(1, 64, 40), 100, 50)
	e.State.Percent = 0.5
	surface := e.Render(2)
	if surface == nil {
		t.Fatal("Render returned nil")
	}
	if got := surface.Bounds(); got != image.Rect(0, 0, 200, 100) {
		t.Errorf("surface bounds = %v, want 200x100", got)
	}
	if e.previous == nil || e.previous.Bounds() != surface.Bounds() {
		t.Error("previous buffer not allocated at the surface size")
	}

	// Same size reuses the surface.
	e.State.Percent = 1
	if e.Render(2) != surface {
		t.Error("surface reallocated at the same size")
	}
}

func TestRevealPlanOrder(t *testing.T) {
	plan := revealPlan(200, 100, 0.16)
	want := []revealPass{passShrink, passCopy, passStretch}
	if len(plan) != len(want) {
		t.Fatalf("plan = %+v, want %d draws", plan, len(want))
	}
	for i, p := range want {
		if plan[i].pass != p {
			t.Fatalf("draw %d = %v, want %v (plan %+v)", i, plan[i].pass, p, plan)
		}
	}

	// The shrink lands on whole pixels; the copy and the stretch read
	// exactly that grid, and the stretch covers the whole surface.
	shrink, cp, stretch := plan[0], plan[1], plan[2]
	if shrink.dstW != 32 || shrink.dstH != 16 {
		t.Errorf("shrink to %dx%d, want 32x16", shrink.dstW, shrink.dstH)
	}
	if cp.srcW != shrink.dstW || cp.srcH != shrink.dstH {
		t.Errorf("copy reads %dx%d, want the %dx%d grid", cp.srcW, cp.srcH, shrink.dstW, shrink.dstH)
	}
	if stretch.srcW != shrink.dstW || stretch.srcH != shrink.dstH {
		t.Errorf("stretch reads %dx%d, want the %dx%d grid", stretch.srcW, stretch.srcH, shrink.dstW, shrink.dstH)
	}
	if stretch.dstW != 200 || stretch.dstH != 100 {
		t.Errorf("stretch to %dx%d, want 200x100", stretch.dstW, stretch.dstH)
	}
}

func TestRevealPlanLimits(t *testing.T) {
	if plan := revealPlan(200, 100, 0); plan != nil {
		t.Errorf("plan at 0 = %+v, want nothing", plan)
	}
	if plan := revealPlan(200, 100, -0.05); plan != nil {
		t.Errorf("plan below 0 = %+v, want nothing", plan)
	}
	plan := revealPlan(200, 100, 1)
	if len(plan) != 1 || plan[0].pass != passFull || plan[0].dstW != 200 || plan[0].dstH != 100 {
		t.Errorf("plan at 1 = %+v, want one full draw", plan)
	}
	// A tiny percent still keeps a one-pixel grid.
	plan = revealPlan(200, 100, 0.001)
	if plan[0].dstW != 1 || plan[0].dstH != 1 {
		t.Errorf("tiny grid = %dx%d, want 1x1", plan[0].dstW, plan[0].dstH)
	}
}

// runRevealPlan executes plan on the CPU with the same nearest-neighbour
// sampling the GPU path uses.
func runRevealPlan(img image.Image, w, h int, plan []revealDraw) *image.RGBA {
	surface := image.NewRGBA(image.Rect(0, 0, w, h))
	var previous *image.RGBA
	for _, d := range plan {
		switch d.pass {
		case passFull, passShrink:
			scaled := transform.Resize(img, d.dstW, d.dstH, transform.NearestNeighbor)
			draw.Draw(surface, scaled.Bounds(), scaled, image.Point{}, draw.Over)
		case passCopy:
			previous = image.NewRGBA(image.Rect(0, 0, d.srcW, d.srcH))
			draw.Draw(previous, previous.Bounds(), surface, image.Point{}, draw.Src)
			surface = image.NewRGBA(image.Rect(0, 0, w, h))
		case passStretch:
			scaled := transform.Resize(previous, d.dstW, d.dstH, transform.NearestNeighbor)
			draw.Draw(surface, scaled.Bounds(), scaled, image.Point{}, draw.Over)
		}
	}
	return surface
}

func TestRevealPlanMatchesPixelate(t *testing.T) {
	src := gradientImage(13, 7)
	for _, p := range []float64{0.01, 0.13, 0.2, 0.35, 0.77, 1} {
		got := runRevealPlan(src, 13, 7, revealPlan(13, 7, p))
		want := Pixelate(src, p)
		for y := 0; y < 7; y++ {
			for x := 0; x < 13; x++ {
				gr, gg, gb, ga := got.At(x, y).RGBA()
				wr, wg, wb, wa := want.At(x, y).RGBA()
				if gr != wr || gg != wg || gb != wb || ga != wa {
					t.Fatalf("percent %v: pixel (%d, %d) = %v, want %v", p, x, y, got.At(x, y), want.At(x, y))
				}
				if ga != 0xffff {
					t.Fatalf("percent %v: pixel (%d, %d) is not opaque", p, x, y)
				}
			}
		}
	}
}

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0, A: 255})
		}
	}
	return img
}

func distinctColors(img image.Image) int {
	seen := map[color.RGBA]bool{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			seen[color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}] = true
		}
	}
	return len(seen)
}

func TestPixelate(t *testing.T) {
	src := gradientImage(8, 8)
	if n := distinctColors(src); n != 64 {
		t.Fatalf("source has %d colors, want 64", n)
	}

	half := Pixelate(src, 0.5)
	if half.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", half.Bounds(), src.Bounds())
	}
	if n := distinctColors(half); n > 16 {
		t.Errorf("half has %d colors, want at most 16", n)
	}
	if n := distinctColors(Pixelate(src, 0.25)); n > 4 {
		t.Errorf("quarter has %d colors, want at most 4", n)
	}
	if Pixelate(src, 1) != image.Image(src) {
		t.Error("percent 1 should return the source")
	}

	empty := Pixelate(src, 0)
	if empty.Bounds() != src.Bounds() {
		t.Errorf("empty bounds = %v", empty.Bounds())
	}
	if _, _, _, a := empty.At(3, 3).RGBA(); a != 0 {
		t.Errorf("percent 0 alpha = %v, want 0", a)
	}
}

func TestPixelateTinyPercentKeepsOnePixel(t *testing.T) {
	if n := distinctColors(Pixelate(gradientImage(8, 8), 0.01)); n != 1 {
		t.Errorf("colors = %d, want 1", n)
	}
}
