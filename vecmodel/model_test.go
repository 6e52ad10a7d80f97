package vecmodel

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/benoitkugler/vecmesh/vecgeom"
	"github.com/google/go-cmp/cmp"
)

func squareArea(x0, y0, side float64) *vecgeom.PolyArea {
	pts := vecgeom.NewPoints()
	area := &vecgeom.PolyArea{Points: pts}
	for _, p := range []vecgeom.Point{
		{X: x0, Y: y0}, {X: x0 + side, Y: y0},
		{X: x0 + side, Y: y0 + side}, {X: x0, Y: y0 + side},
	} {
		area.Poly = append(area.Poly, pts.AddPoint(p))
	}
	return area
}

func ringArea() *vecgeom.PolyArea {
	area := squareArea(0, 0, 10)
	// clockwise inner square
	var hole []int
	for _, p := range []vecgeom.Point{
		{X: 3, Y: 3}, {X: 3, Y: 7}, {X: 7, Y: 7}, {X: 7, Y: 3},
	} {
		hole = append(hole, area.Points.AddPoint(p))
	}
	area.Holes = [][]int{hole}
	return area
}

func meshArea(m *Mesh) float64 {
	total := 0.0
	for _, f := range m.Faces {
		for i := 1; i < len(f)-1; i++ {
			a := m.Points.Pos[f[0]].XY()
			b := m.Points.Pos[f[i]].XY()
			c := m.Points.Pos[f[i+1]].XY()
			total += 0.5 * triArea2(a, b, c)
		}
	}
	return total
}

func TestBuildSquare(t *testing.T) {
	m, warns := Build([]*vecgeom.PolyArea{squareArea(0, 0, 10)}, false)
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if m.VertexCount() != 4 || m.FaceCount() != 2 {
		t.Fatalf("got %d vertices, %d faces, want 4 and 2", m.VertexCount(), m.FaceCount())
	}
	if got := meshArea(m); math.Abs(got-100) > 1e-9 {
		t.Errorf("covered area = %g, want 100", got)
	}
}

func TestBuildRing(t *testing.T) {
	m, warns := Build([]*vecgeom.PolyArea{ringArea()}, false)
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if got := meshArea(m); math.Abs(got-84) > 1e-9 {
		t.Errorf("covered area = %g, want 84", got)
	}
	for _, f := range m.Faces {
		a := m.Points.Pos[f[0]].XY()
		b := m.Points.Pos[f[1]].XY()
		c := m.Points.Pos[f[2]].XY()
		if triArea2(a, b, c) <= 0 {
			t.Errorf("face %v is not counter-clockwise", f)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := Build([]*vecgeom.PolyArea{ringArea()}, false)
	b, _ := Build([]*vecgeom.PolyArea{ringArea()}, false)
	if diff := cmp.Diff(a.Faces, b.Faces); diff != "" {
		t.Errorf("faces differ between runs:\n%s", diff)
	}
	if diff := cmp.Diff(a.Points.Pos, b.Points.Pos); diff != "" {
		t.Errorf("vertices differ between runs:\n%s", diff)
	}
}

func TestBuildWarningPathIndex(t *testing.T) {
	pts := vecgeom.NewPoints()
	collapsed := &vecgeom.PolyArea{Points: pts, PathIndex: 7}
	for _, p := range []vecgeom.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	} {
		collapsed.Poly = append(collapsed.Poly, pts.AddPoint(p))
	}
	_, warns := Build([]*vecgeom.PolyArea{collapsed}, false)
	if len(warns) != 1 {
		t.Fatalf("%d warnings, want 1", len(warns))
	}
	// the warning points at the source path, not at the
	// position of the region in the build input
	if warns[0].PathIndex != 7 {
		t.Errorf("warning located at path %d, want 7", warns[0].PathIndex)
	}
}

func TestBuildMaterials(t *testing.T) {
	red := squareArea(0, 0, 10)
	red.Color, red.HasColor = color.RGBA{R: 200, A: 255}, true
	nearRed := squareArea(20, 0, 10)
	nearRed.Color, nearRed.HasColor = color.RGBA{R: 201, A: 255}, true
	plain := squareArea(40, 0, 10)

	m, _ := Build([]*vecgeom.PolyArea{red, nearRed, plain}, true)
	if len(m.Materials) != 1 {
		t.Fatalf("got %d materials, want 1", len(m.Materials))
	}
	want := []int{0, 0, 0, 0, -1, -1}
	if diff := cmp.Diff(want, m.FaceMat); diff != "" {
		t.Errorf("face materials:\n%s", diff)
	}
}

func TestScaleAndCenter(t *testing.T) {
	m, _ := Build([]*vecgeom.PolyArea{squareArea(5, 5, 10)}, false)
	m.ScaleAndCenter(4)
	b := m.Points.Bounds()
	if math.Abs(b.Max.X-2) > 1e-9 || math.Abs(b.Min.X+2) > 1e-9 {
		t.Errorf("x range [%g, %g], want [-2, 2]", b.Min.X, b.Max.X)
	}
	if math.Abs(b.Max.Y-2) > 1e-9 || math.Abs(b.Min.Y+2) > 1e-9 {
		t.Errorf("y range [%g, %g], want [-2, 2]", b.Min.Y, b.Max.Y)
	}
}

func TestExtrudeNoBackCap(t *testing.T) {
	m, _ := Build([]*vecgeom.PolyArea{squareArea(0, 0, 10)}, false)
	m.Extrude(1, false)
	if m.VertexCount() != 8 {
		t.Errorf("vertex count = %d, want 8", m.VertexCount())
	}
	// 2 cap triangles and 4 side quads
	if m.FaceCount() != 6 {
		t.Errorf("face count = %d, want 6", m.FaceCount())
	}
	quads := 0
	for _, f := range m.Faces {
		if len(f) == 4 {
			quads++
		}
	}
	if quads != 4 {
		t.Errorf("quad count = %d, want 4", quads)
	}
	for _, c := range m.Regions[0].Contours {
		for _, v := range c.Verts {
			if m.Points.Pos[v].Z != 1 {
				t.Fatalf("contour vertex %d at z=%g, want 1", v, m.Points.Pos[v].Z)
			}
		}
	}
}

func TestExtrudeBackCap(t *testing.T) {
	m, _ := Build([]*vecgeom.PolyArea{squareArea(0, 0, 10)}, false)
	m.Extrude(1, true)
	if m.FaceCount() != 8 {
		t.Errorf("face count = %d, want 8", m.FaceCount())
	}
	backs := 0
	for _, f := range m.Faces {
		if len(f) != 3 {
			continue
		}
		a := m.Points.Pos[f[0]]
		if a.Z != 0 {
			continue
		}
		b, c := m.Points.Pos[f[1]], m.Points.Pos[f[2]]
		if triArea2(a.XY(), b.XY(), c.XY()) < 0 {
			backs++ // mirrored winding faces away from the solid
		}
	}
	if backs != 2 {
		t.Errorf("back cap triangles = %d, want 2", backs)
	}
}

func TestWriteOBJ(t *testing.T) {
	m, _ := Build([]*vecgeom.PolyArea{squareArea(0, 0, 1)}, false)
	var buf bytes.Buffer
	if err := m.WriteOBJ(&buf); err != nil {
		t.Fatal(err)
	}
	want := "v 0.000000 0.000000 0.000000\n" +
		"v 1.000000 0.000000 0.000000\n" +
		"v 1.000000 1.000000 0.000000\n" +
		"v 0.000000 1.000000 0.000000\n" +
		"f 4 1 2\n" +
		"f 2 3 4\n"
	if got := buf.String(); got != want {
		t.Errorf("obj output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPoints3Dedup(t *testing.T) {
	ps := NewPoints3()
	a := ps.AddPoint(Point3{1, 2, 3})
	b := ps.AddPoint(Point3{1 + 1e-4, 2 - 1e-4, 3})
	if a != b {
		t.Errorf("near points got distinct indices %d and %d", a, b)
	}
	c := ps.AddPoint(Point3{1, 2, 3.5})
	if c == a {
		t.Errorf("points with different z merged")
	}
}
