package wirescape

import (
	"math"
	"testing"
)

func TestDodecahedronCounts(t *testing.T) {
	tests := []struct {
		detail             int
		verts, tris, edges int
	}{
		{0, 20, 36, 54},
		{1, 74, 144, 216},
		{5, 650, 1296, 1944},
	}
	for _, tt := range tests {
		g := NewDodecahedron(5, tt.detail)
		if len(g.Vertices) != tt.verts || len(g.Triangles) != tt.tris || len(g.Edges) != tt.edges {
			t.Errorf("detail %d: %d vertices, %d triangles, %d edges; want %d, %d, %d",
				tt.detail, len(g.Vertices), len(g.Triangles), len(g.Edges), tt.verts, tt.tris, tt.edges)
		}
		// Closed surface: V - E + F = 2.
		if euler := len(g.Vertices) - len(g.Edges) + len(g.Triangles); euler != 2 {
			t.Errorf("detail %d: Euler characteristic %d, want 2", tt.detail, euler)
		}
	}
}

func TestDodecahedronVerticesOnSphere(t *testing.T) {
	const radius = 5
	for _, detail := range []int{0, 2} {
		g := NewDodecahedron(radius, detail)
		for i, v := range g.Vertices {
			if d := float64(v.Len()); math.Abs(d-radius) > 1e-3 {
				t.Fatalf("detail %d vertex %d at distance %v, want %v", detail, i, d, radius)
			}
		}
	}
}

func TestDodecahedronNegativeDetail(t *testing.T) {
	g := NewDodecahedron(1, -3)
	if len(g.Triangles) != 36 {
		t.Errorf("triangles = %d, want 36", len(g.Triangles))
	}
}

func TestDodecahedronFacesArePentagons(t *testing.T) {
	verts := dodecahedronVertices()
	if len(verts) != 20 {
		t.Fatalf("vertices = %d, want 20", len(verts))
	}
	faces := dodecahedronFaces(verts)
	if len(faces) != 12 {
		t.Fatalf("faces = %d, want 12", len(faces))
	}
	uses := make([]int, len(verts))
	for _, f := range faces {
		for _, i := range f {
			uses[i]++
		}
	}
	for i, n := range uses {
		if n != 3 {
			t.Errorf("vertex %d is in %d faces, want 3", i, n)
		}
	}
}

func TestPlaneCounts(t *testing.T) {
	g := NewPlane(40, 40, 2, 2)
	if len(g.Vertices) != 9 || len(g.Triangles) != 8 || len(g.Edges) != 16 {
		t.Errorf("got %d vertices, %d triangles, %d edges; want 9, 8, 16",
			len(g.Vertices), len(g.Triangles), len(g.Edges))
	}

	g = NewPlane(40, 40, 50, 50)
	if len(g.Vertices) != 51*51 || len(g.Triangles) != 2*50*50 {
		t.Errorf("50x50 plane: %d vertices, %d triangles", len(g.Vertices), len(g.Triangles))
	}
}

func TestPlaneExtent(t *testing.T) {
	g := NewPlane(40, 20, 4, 4)
	var minX, maxX, minY, maxY float32
	for _, v := range g.Vertices {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
		if v.Z != 0 {
			t.Fatalf("vertex off the XY plane: %+v", v)
		}
	}
	if minX != -20 || maxX != 20 || minY != -10 || maxY != 10 {
		t.Errorf("extent x [%v, %v] y [%v, %v], want x [-20, 20] y [-10, 10]", minX, maxX, minY, maxY)
	}
}

func TestPlaneZeroSegmentsClamped(t *testing.T) {
	g := NewPlane(1, 1, 0, 0)
	if len(g.Triangles) != 2 {
		t.Errorf("triangles = %d, want 2", len(g.Triangles))
	}
}
