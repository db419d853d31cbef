package wirescape

import (
	"math"
	"sort"

	"github.com/chewxy/math32"
)

// Geometry is an indexed triangle mesh. Edges lists every unique triangle
// edge once and is what wireframe materials draw.
type Geometry struct {
	Vertices  []Vec3
	Triangles [][3]int
	Edges     [][2]int
}

// geometryBuilder merges coincident vertices while triangles are appended.
type geometryBuilder struct {
	g     Geometry
	cells map[[3]int32][]int
}

func newGeometryBuilder() *geometryBuilder {
	return &geometryBuilder{cells: make(map[[3]int32][]int)}
}

const (
	mergeCell    = 1e-2
	mergeEpsilon = 1e-3
)

func cellOf(v Vec3) [3]int32 {
	return [3]int32{
		int32(math.Floor(float64(v.X) / mergeCell)),
		int32(math.Floor(float64(v.Y) / mergeCell)),
		int32(math.Floor(float64(v.Z) / mergeCell)),
	}
}

// vertex returns the index of v, adding it if no vertex lies within
// mergeEpsilon. Neighbouring cells are searched so points straddling a cell
// boundary still merge.
func (b *geometryBuilder) vertex(v Vec3) int {
	c := cellOf(v)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				for _, i := range b.cells[[3]int32{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if b.g.Vertices[i].Sub(v).Len() < mergeEpsilon {
						return i
					}
				}
			}
		}
	}
	i := len(b.g.Vertices)
	b.g.Vertices = append(b.g.Vertices, v)
	b.cells[c] = append(b.cells[c], i)
	return i
}

func (b *geometryBuilder) triangle(a, c, d Vec3) {
	b.g.Triangles = append(b.g.Triangles, [3]int{b.vertex(a), b.vertex(c), b.vertex(d)})
}

// build derives the unique edge list and returns the geometry.
func (b *geometryBuilder) build() *Geometry {
	seen := make(map[[2]int]struct{}, len(b.g.Triangles)*3/2)
	for _, t := range b.g.Triangles {
		for k := 0; k < 3; k++ {
			i, j := t[k], t[(k+1)%3]
			if i == j {
				continue
			}
			if i > j {
				i, j = j, i
			}
			e := [2]int{i, j}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			b.g.Edges = append(b.g.Edges, e)
		}
	}
	g := b.g
	return &g
}

// dodecahedronVertices returns the 20 corners of a dodecahedron on a sphere
// of radius sqrt(3): (±1, ±1, ±1), (0, ±1/φ, ±φ), (±1/φ, ±φ, 0), (±φ, 0, ±1/φ).
func dodecahedronVertices() []Vec3 {
	t := (1 + math32.Sqrt(5)) / 2
	r := 1 / t
	verts := make([]Vec3, 0, 20)
	for _, x := range []float32{-1, 1} {
		for _, y := range []float32{-1, 1} {
			for _, z := range []float32{-1, 1} {
				verts = append(verts, Vec3{x, y, z})
			}
		}
	}
	for _, s1 := range []float32{-1, 1} {
		for _, s2 := range []float32{-1, 1} {
			verts = append(verts,
				Vec3{0, s1 * r, s2 * t},
				Vec3{s1 * r, s2 * t, 0},
				Vec3{s1 * t, 0, s2 * r},
			)
		}
	}
	return verts
}

// dodecahedronFaces returns the 12 pentagonal faces as ordered vertex loops.
// Face centers point along (±1, 0, ±φ) and its cyclic permutations; each face
// is the five corners nearest that direction.
func dodecahedronFaces(verts []Vec3) [][5]int {
	t := (1 + math32.Sqrt(5)) / 2
	var centers []Vec3
	for _, s1 := range []float32{-1, 1} {
		for _, s2 := range []float32{-1, 1} {
			centers = append(centers,
				Vec3{s1, 0, s2 * t},
				Vec3{s2 * t, s1, 0},
				Vec3{0, s2 * t, s1},
			)
		}
	}

	faces := make([][5]int, 0, len(centers))
	for _, c := range centers {
		n := c.Normalize()
		type cand struct {
			i int
			d float32
		}
		cands := make([]cand, len(verts))
		for i, v := range verts {
			cands[i] = cand{i, v.Dot(n)}
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].d > cands[b].d })

		// Order the five corners by angle around the face normal.
		center := Vec3{}
		for k := 0; k < 5; k++ {
			center = center.Add(verts[cands[k].i])
		}
		center = center.Scale(1.0 / 5)
		u := verts[cands[0].i].Sub(center).Normalize()
		w := n.Cross(u)
		type ang struct {
			i int
			a float32
		}
		ring := make([]ang, 5)
		for k := 0; k < 5; k++ {
			d := verts[cands[k].i].Sub(center)
			ring[k] = ang{cands[k].i, math32.Atan2(d.Dot(w), d.Dot(u))}
		}
		sort.Slice(ring, func(a, b int) bool { return ring[a].a < ring[b].a })
		var f [5]int
		for k := range ring {
			f[k] = ring[k].i
		}
		faces = append(faces, f)
	}
	return faces
}

// NewDodecahedron builds a dodecahedron of the given radius. Each triangle of
// the fan-triangulated pentagons is subdivided detail times and every vertex
// is pushed onto the sphere, so high detail values approach a sphere.
func NewDodecahedron(radius float32, detail int) *Geometry {
	if detail < 0 {
		detail = 0
	}
	verts := dodecahedronVertices()
	b := newGeometryBuilder()
	for _, f := range dodecahedronFaces(verts) {
		for k := 1; k < 4; k++ {
			subdivideFace(b, verts[f[0]], verts[f[k]], verts[f[k+1]], detail, radius)
		}
	}
	return b.build()
}

func lerp3(a, b Vec3, t float32) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// subdivideFace splits triangle abc into (detail+1)^2 triangles and projects
// them onto a sphere of the given radius.
func subdivideFace(b *geometryBuilder, a, bb, c Vec3, detail int, radius float32) {
	cols := detail + 1
	v := make([][]Vec3, cols+1)
	for i := 0; i <= cols; i++ {
		ai := lerp3(a, c, float32(i)/float32(cols))
		bi := lerp3(bb, c, float32(i)/float32(cols))
		rows := cols - i
		v[i] = make([]Vec3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				v[i][j] = ai
			} else {
				v[i][j] = lerp3(ai, bi, float32(j)/float32(rows))
			}
		}
	}
	onSphere := func(p Vec3) Vec3 { return p.Normalize().Scale(radius) }
	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				b.triangle(onSphere(v[i][k+1]), onSphere(v[i+1][k]), onSphere(v[i][k]))
			} else {
				b.triangle(onSphere(v[i][k+1]), onSphere(v[i+1][k+1]), onSphere(v[i+1][k]))
			}
		}
	}
}

// NewPlane builds a width×height plane in the XY plane centered on the
// origin, split into widthSegments×heightSegments quads of two triangles.
func NewPlane(width, height float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}
	gx := widthSegments + 1
	gy := heightSegments + 1
	segW := width / float32(widthSegments)
	segH := height / float32(heightSegments)

	g := &Geometry{Vertices: make([]Vec3, 0, gx*gy)}
	for iy := 0; iy < gy; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix < gx; ix++ {
			x := float32(ix)*segW - width/2
			g.Vertices = append(g.Vertices, Vec3{x, -y, 0})
		}
	}

	b := &geometryBuilder{g: *g}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := ix + gx*iy
			bb := ix + gx*(iy+1)
			c := ix + 1 + gx*(iy+1)
			d := ix + 1 + gx*iy
			b.g.Triangles = append(b.g.Triangles, [3]int{a, bb, d}, [3]int{bb, c, d})
		}
	}
	return b.build()
}
