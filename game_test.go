package wirescape

import (
	"context"
	"testing"
)

func TestGameLayoutFollowsHost(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	g := NewGame(context.Background(), s)

	w, h := g.layout(1024, 768, 3)
	// The pixel ratio is capped at 2.
	if w != 2048 || h != 1536 {
		t.Errorf("screen = %vx%v, want 2048x1536", w, h)
	}
	if want := (Viewport{Width: 1024, Height: 768, DevicePixelRatio: 3}); s.Viewport != want {
		t.Errorf("viewport = %+v, want %+v", s.Viewport, want)
	}
	if _, ok := s.LayoutOverride(); ok {
		t.Error("host layout pinned the viewport")
	}
}

func TestGameLayoutKeepsScriptedResize(t *testing.T) {
	s, clock := newTestSession(t, testConfig())
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "resize", "width": 800, "height": 600, "scale": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)
	g := NewGame(context.Background(), s)

	tick(t, s, clock)
	// The host calls LayoutF after every Update with the window size.
	for i := 0; i < 3; i++ {
		w, h := g.layout(1280, 720, 1)
		if w != 1600 || h != 1200 {
			t.Fatalf("layout %d: screen = %vx%v, want 1600x1200", i, w, h)
		}
		tick(t, s, clock)
	}

	want := Viewport{Width: 800, Height: 600, DevicePixelRatio: 2}
	if s.Viewport != want {
		t.Errorf("viewport = %+v, want %+v", s.Viewport, want)
	}
	if s.Renderer.Width != 1600 || s.Renderer.Height != 1200 {
		t.Errorf("renderer = %dx%d, want 1600x1200", s.Renderer.Width, s.Renderer.Height)
	}
	if a := float64(s.Scene.Camera.Aspect); !near(a, 800.0/600.0, 1e-6) {
		t.Errorf("aspect = %v, want %v", a, 800.0/600.0)
	}
}
