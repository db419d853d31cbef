package wirescape

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Geometry Benchmarks ---

func BenchmarkNewDodecahedron_Detail5(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewDodecahedron(5, 5)
	}
}

func BenchmarkNewPlane_50x50(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewPlane(40, 40, 50, 50)
	}
}

// --- Rendering Benchmarks ---

func BenchmarkRender_DefaultScene(b *testing.B) {
	cfg := DefaultConfig()
	s := BuildScene(cfg)
	s.Camera.SetAspect(16.0 / 9.0)
	r := NewRenderer(cfg)
	screen := ebiten.NewImage(1280, 720)

	r.Render(screen, s) // warmup
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Mesh(MeshPolyhedron).Rotation.Y += 0.01
		r.Render(screen, s)
	}
}

func BenchmarkRevealRender(b *testing.B) {
	e := NewRevealEffect(PlaceholderImages(1, 320, 200), 320, 200)
	e.State.Activate(0)
	e.State.Percent = 0.5
	e.Render(2) // warmup
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Render(2)
	}
}

func BenchmarkPixelate(b *testing.B) {
	img := PlaceholderImages(1, 320, 200)[0].Decoded
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Pixelate(img, 0.1)
	}
}

func BenchmarkTick_Hover(b *testing.B) {
	clock := &ManualClock{}
	s, err := NewSession(DefaultConfig(), SessionOptions{
		Clock:  clock,
		Assets: PlaceholderImages(4, 64, 40),
	})
	if err != nil {
		b.Fatal(err)
	}
	pts := []image.Point{{170, 140}, {170, 96}, {900, 500}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pts[i%len(pts)]
		s.InjectMove(float64(p.X), float64(p.Y))
		clock.Advance(1.0 / 60)
		s.Tick()
	}
}
