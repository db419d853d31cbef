package wirescape

import (
	"math"
	"testing"
)

func TestPointerMoveOverwritesTarget(t *testing.T) {
	var p PointerTracker
	p.Move(10, 20)
	p.Move(30, 40)
	if p.TargetX != 30 || p.TargetY != 40 {
		t.Errorf("target = (%v, %v), want (30, 40)", p.TargetX, p.TargetY)
	}
	if p.CurrentX != 0 || p.CurrentY != 0 {
		t.Errorf("current moved before Smooth: (%v, %v)", p.CurrentX, p.CurrentY)
	}
}

func TestPointerSmoothMonotonicNoOvershoot(t *testing.T) {
	for _, factor := range []float64{0.01, 0.075, 0.5, 0.99} {
		var p PointerTracker
		p.Move(-300, 250)
		prevDX := math.Abs(p.TargetX - p.CurrentX)
		prevDY := math.Abs(p.TargetY - p.CurrentY)
		for i := 0; i < 500; i++ {
			p.Smooth(factor)
			if p.CurrentX < p.TargetX || p.CurrentY > p.TargetY {
				t.Fatalf("factor %v frame %d: overshoot to (%v, %v)", factor, i, p.CurrentX, p.CurrentY)
			}
			dx := math.Abs(p.TargetX - p.CurrentX)
			dy := math.Abs(p.TargetY - p.CurrentY)
			if dx > prevDX || dy > prevDY {
				t.Fatalf("factor %v frame %d: distance grew", factor, i)
			}
			prevDX, prevDY = dx, dy
		}
	}
}

func TestPointerSmoothConvergesToCenter(t *testing.T) {
	// 1920x1080 viewport, pointer resting at the center.
	const factor = 0.075
	var p PointerTracker
	p.Move(960, 540)

	dist := func() float64 {
		return math.Hypot(p.TargetX-p.CurrentX, p.TargetY-p.CurrentY)
	}
	start := dist()
	// Frames until the remaining distance drops below one unit.
	want := int(math.Ceil(math.Log(1/start) / math.Log(1-factor)))

	frames := 0
	for dist() >= 1 {
		p.Smooth(factor)
		frames++
		if frames > 1000 {
			t.Fatal("did not converge")
		}
	}
	if frames != want {
		t.Errorf("converged in %d frames, want %d", frames, want)
	}
	if frames < 85 || frames > 95 {
		t.Errorf("frames = %d, want about 90", frames)
	}

	var q PointerTracker
	q.Move(960, 540)
	for i := 0; i < 60; i++ {
		q.Smooth(factor)
	}
	got := math.Hypot(q.TargetX-q.CurrentX, q.TargetY-q.CurrentY)
	if got < 10 || got > 10.5 {
		t.Errorf("distance after 60 frames = %v, want about 10.2", got)
	}
}

func TestPointerSnap(t *testing.T) {
	var p PointerTracker
	p.Move(5, 6)
	p.Snap()
	if p.CurrentX != 5 || p.CurrentY != 6 {
		t.Errorf("current = (%v, %v), want (5, 6)", p.CurrentX, p.CurrentY)
	}
}
