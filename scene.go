package wirescape

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Mesh names used by BuildScene and the debug panel bindings.
const (
	MeshPolyhedron = "polyhedron"
	MeshWater      = "water"
)

// Scene owns the camera and the meshes drawn by a Renderer.
type Scene struct {
	Camera *PerspectiveCamera
	meshes []*Mesh
}

// NewScene creates an empty scene viewed through cam.
func NewScene(cam *PerspectiveCamera) *Scene {
	return &Scene{Camera: cam}
}

// Add appends m to the scene. Meshes draw in insertion order.
func (s *Scene) Add(m *Mesh) {
	s.meshes = append(s.meshes, m)
}

// Meshes returns the scene's meshes. The returned slice MUST NOT be mutated.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Mesh returns the first mesh with the given name, or nil.
func (s *Scene) Mesh(name string) *Mesh {
	for _, m := range s.meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// BuildScene creates the camera and meshes described by cfg. The camera
// aspect is 1 until the first resize.
func BuildScene(cfg Config) *Scene {
	cc := cfg.Camera
	cam := NewPerspectiveCamera(cc.FOV, 1, cc.Near, cc.Far)
	cam.Position = cc.Position
	s := NewScene(cam)

	pc := cfg.Polyhedron
	poly := NewMesh(MeshPolyhedron, NewDodecahedron(pc.Radius, pc.Detail), Material{
		Color:     ColorHex(pc.Color),
		Wireframe: pc.Wireframe,
	})
	poly.Position = pc.Position
	s.Add(poly)

	wc := cfg.Plane
	water := NewMesh(MeshWater, NewPlane(wc.Width, wc.Height, wc.WidthSegments, wc.HeightSegments), Material{
		Color:     ColorHex(wc.Color),
		Wireframe: wc.Wireframe,
	})
	water.Position = wc.Position
	water.Rotation = wc.Rotation
	s.Add(water)

	return s
}

// Renderer draws a Scene into an Ebitengine image.
type Renderer struct {
	// Width and Height are the output size in device pixels.
	Width, Height int
	// PixelRatio scales line widths and the output size.
	PixelRatio float64

	ClearColor  Color
	Transparent bool
	Antialias   bool

	// Debug collects per-frame timing in Stats.
	Debug bool
	Stats frameStats

	batch triangleBatch
}

// NewRenderer creates a renderer from the window section of cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		PixelRatio:  1,
		ClearColor:  ColorHex(cfg.Background),
		Transparent: cfg.Transparent,
		Antialias:   cfg.Antialias,
		Debug:       cfg.Debug,
	}
}

// SetPixelRatio sets the device pixel ratio applied by SetSize.
func (r *Renderer) SetPixelRatio(pr float64) {
	if pr <= 0 {
		pr = 1
	}
	r.PixelRatio = pr
}

// SetSize sets the output size from a viewport size in logical pixels.
func (r *Renderer) SetSize(width, height float64) {
	r.Width = int(width * r.PixelRatio)
	r.Height = int(height * r.PixelRatio)
}

// Render clears dst and draws every visible mesh of s through its camera.
func (r *Renderer) Render(dst *ebiten.Image, s *Scene) {
	var t0 time.Time
	if r.Debug {
		t0 = time.Now()
	}

	if r.Transparent {
		dst.Clear()
	} else {
		dst.Fill(r.ClearColor.toRGBA())
	}

	b := dst.Bounds()
	proj := s.Camera.Projector(float32(b.Dx()), float32(b.Dy()))
	viewProj := s.Camera.ViewProjection()

	r.batch.reset()
	r.batch.opts.AntiAlias = r.Antialias
	// Vertex colors are premultiplied in triangleBatch.vertex.
	r.batch.opts.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	r.batch.opts.Blend = BlendNormal.EbitenBlend()
	for _, m := range s.meshes {
		// Meshes with another blend mode cannot share a draw call.
		if blend := m.Material.Blend.EbitenBlend(); blend != r.batch.opts.Blend {
			r.batch.flush(dst)
			r.batch.opts.Blend = blend
		}
		r.batch.appendMesh(dst, m, proj, viewProj, r.PixelRatio)
	}
	r.batch.flush(dst)

	if r.Debug {
		r.Stats.renderTime = time.Since(t0)
		r.Stats.meshCount = len(s.meshes)
		r.Stats.drawCalls = r.batch.drawCalls
	}
}
