package wirescape

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Material describes how a mesh is drawn.
type Material struct {
	Color Color
	// Wireframe draws triangle edges instead of filled triangles.
	Wireframe bool
	// LineWidth is the wireframe stroke width in device pixels. Zero means 1.
	LineWidth float64
	// Blend is the compositing mode of the mesh's triangles.
	Blend BlendMode
}

// Mesh is a geometry placed in the scene with a material.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material Material

	Position Vec3
	Rotation Vec3 // Euler angles in radians, applied X then Y then Z.
	Visible  bool
}

// NewMesh creates a visible mesh at the origin.
func NewMesh(name string, g *Geometry, m Material) *Mesh {
	return &Mesh{Name: name, Geometry: g, Material: m, Visible: true}
}

// WorldMatrix returns Translate(Position) * Rotate(Rotation).
func (m *Mesh) WorldMatrix() Mat4 {
	return Translate4(m.Position).Mul(RotateXYZ(m.Rotation))
}

// --- White pixel singleton (no sync.Once; the frame loop is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source texture for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// maxBatchVertices keeps every index inside uint16.
const maxBatchVertices = 65532

// triangleBatch accumulates solid-colored triangles and flushes them with as
// few DrawTriangles calls as the uint16 index range allows.
type triangleBatch struct {
	verts     []ebiten.Vertex
	inds      []uint16
	drawCalls int
	opts      ebiten.DrawTrianglesOptions
}

func (b *triangleBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.drawCalls = 0
}

func (b *triangleBatch) vertex(x, y float32, c Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	}
}

// reserve flushes if n more vertices would overflow the index range.
func (b *triangleBatch) reserve(dst *ebiten.Image, n int) {
	if len(b.verts)+n > maxBatchVertices {
		b.flush(dst)
	}
}

// quad appends the four corners p0..p3 as two triangles.
func (b *triangleBatch) quad(dst *ebiten.Image, p [4]Vec2, c Color) {
	b.reserve(dst, 4)
	base := uint16(len(b.verts))
	for _, q := range p {
		b.verts = append(b.verts, b.vertex(float32(q.X), float32(q.Y), c))
	}
	b.inds = append(b.inds, base, base+1, base+2, base+1, base+3, base+2)
}

// triangle appends a single filled triangle.
func (b *triangleBatch) triangle(dst *ebiten.Image, p [3]Vec2, c Color) {
	b.reserve(dst, 3)
	base := uint16(len(b.verts))
	for _, q := range p {
		b.verts = append(b.verts, b.vertex(float32(q.X), float32(q.Y), c))
	}
	b.inds = append(b.inds, base, base+1, base+2)
}

// line appends a segment of the given width as a quad built from the
// segment's left-perpendicular.
func (b *triangleBatch) line(dst *ebiten.Image, a, c Vec2, width float64, col Color) {
	nx, ny := perpendicular(a, c)
	hw := width / 2
	b.quad(dst, [4]Vec2{
		{a.X + nx*hw, a.Y + ny*hw},
		{a.X - nx*hw, a.Y - ny*hw},
		{c.X + nx*hw, c.Y + ny*hw},
		{c.X - nx*hw, c.Y - ny*hw},
	}, col)
}

func (b *triangleBatch) flush(dst *ebiten.Image) {
	if len(b.inds) == 0 {
		return
	}
	dst.DrawTriangles(b.verts, b.inds, ensureWhitePixel(), &b.opts)
	b.drawCalls++
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// appendMesh projects m and appends its edges or triangles to the batch.
// lineScale multiplies the material line width (the device pixel ratio).
func (b *triangleBatch) appendMesh(dst *ebiten.Image, m *Mesh, proj Projector, viewProj Mat4, lineScale float64) {
	if !m.Visible || m.Geometry == nil {
		return
	}
	mvp := viewProj.Mul(m.WorldMatrix())
	p := Projector{vp: mvp, width: proj.width, height: proj.height, near: proj.near}

	g := m.Geometry
	screen := make([]Vec2, len(g.Vertices))
	visible := make([]bool, len(g.Vertices))
	for i, v := range g.Vertices {
		sx, sy, ok := p.Project(v)
		screen[i] = Vec2{float64(sx), float64(sy)}
		visible[i] = ok
	}

	if m.Material.Wireframe {
		w := m.Material.LineWidth
		if w <= 0 {
			w = 1
		}
		w *= lineScale
		for _, e := range g.Edges {
			if !visible[e[0]] || !visible[e[1]] {
				continue
			}
			b.line(dst, screen[e[0]], screen[e[1]], w, m.Material.Color)
		}
		return
	}

	// Filled: painter's order, far triangles first.
	type tri struct {
		idx   [3]int
		depth float32
	}
	tris := make([]tri, 0, len(g.Triangles))
	for _, t := range g.Triangles {
		if !visible[t[0]] || !visible[t[1]] || !visible[t[2]] {
			continue
		}
		var d float32
		for _, i := range t {
			_, _, _, w := mvp.MulPoint(g.Vertices[i])
			d += w
		}
		tris = append(tris, tri{t, d})
	}
	sort.Slice(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })
	for _, t := range tris {
		b.triangle(dst, [3]Vec2{screen[t.idx[0]], screen[t.idx[1]], screen[t.idx[2]]}, m.Material.Color)
	}
}
