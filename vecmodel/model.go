package vecmodel

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecfill"
	"github.com/benoitkugler/vecmesh/vecgeom"
)

// Build triangulates the resolved regions into a flat mesh at z=0.
// Regions whose triangulation collapses are dropped with a warning;
// an incomplete clip keeps the triangles that were produced.
func Build(areas []*vecgeom.PolyArea, useColors bool) (*Mesh, []vecdoc.GeometryWarning) {
	m := NewMesh()
	var (
		mats     vecfill.MaterialSet
		warnings []vecdoc.GeometryWarning
	)
	at := func(i int) vecgeom.Point { return m.Points.Pos[i].XY() }

	for _, area := range areas {
		vmap := m.Points.AddPoints(area.Points, 0)
		outer := remap(area.Poly, vmap)
		holes := make([][]int, len(area.Holes))
		for h, hole := range area.Holes {
			holes[h] = remap(hole, vmap)
		}

		tris, ok := Triangulate(outer, holes, at)
		if len(tris) == 0 {
			warnings = append(warnings, vecdoc.GeometryWarning{
				PathIndex: area.PathIndex, Detail: "region collapsed during triangulation",
			})
			continue
		}
		if !ok {
			warnings = append(warnings, vecdoc.GeometryWarning{
				PathIndex: area.PathIndex, Detail: "region only partially triangulated",
			})
		}

		mat := -1
		if useColors && area.HasColor {
			mat = mats.IndexFor(area.Color, true)
		}
		reg := Region{Material: mat}
		reg.Contours = append(reg.Contours, Contour{Verts: outer})
		for _, hole := range holes {
			reg.Contours = append(reg.Contours, Contour{Verts: hole, Hole: true})
		}
		for _, t := range tris {
			reg.CapFaces = append(reg.CapFaces, m.AddFace(t, mat))
		}
		m.Regions = append(m.Regions, reg)
	}
	m.Materials = mats.Colors
	return m, warnings
}

func remap(verts []int, vmap []int) []int {
	out := make([]int, len(verts))
	for i, v := range verts {
		out[i] = vmap[v]
	}
	return out
}

// ScaleAndCenter uniformly rescales the mesh so its longest bounding
// dimension equals target, and recenters it on the origin.
func (m *Mesh) ScaleAndCenter(target float64) {
	if len(m.Points.Pos) == 0 {
		return
	}
	b := m.Points.Bounds()
	maxside := math.Max(b.Max.X-b.Min.X, math.Max(b.Max.Y-b.Min.Y, b.Max.Z-b.Min.Z))
	scale := 1.0
	if maxside > vecgeom.DistTol {
		scale = target / maxside
	}
	translate := b.Min.Add(b.Max).Mul(-0.5)
	for i, p := range m.Points.Pos {
		m.Points.Pos[i] = p.Add(translate).Mul(scale)
	}
	m.Points.rehash()
}

// Extrude lifts every region cap to z=depth and walls in each
// boundary contour with quads. The front cap and the side walls are
// always emitted; capBack additionally closes the solid with a
// mirrored face set at the original height. Region contours are
// rewritten to the lifted rim so later passes work on the front face.
func (m *Mesh) Extrude(depth float64, capBack bool) {
	if depth <= 0 {
		return
	}

	oldFaces, oldMat := m.Faces, m.FaceMat
	m.Faces, m.FaceMat = nil, nil

	for r := range m.Regions {
		reg := &m.Regions[r]
		lift := make(map[int]int)
		top := func(v int) int {
			t, ok := lift[v]
			if !ok {
				p := m.Points.Pos[v]
				t = m.Points.AddPoint(Point3{X: p.X, Y: p.Y, Z: p.Z + depth})
				lift[v] = t
			}
			return t
		}

		var caps []int
		for _, f := range reg.CapFaces {
			lifted := make([]int, len(oldFaces[f]))
			for i, v := range oldFaces[f] {
				lifted[i] = top(v)
			}
			caps = append(caps, m.AddFace(lifted, oldMat[f]))
		}

		for _, c := range reg.Contours {
			for i, a := range c.Verts {
				b := c.Verts[(i+1)%len(c.Verts)]
				m.AddFace([]int{a, b, top(b), top(a)}, reg.Material)
			}
		}

		if capBack {
			for _, f := range reg.CapFaces {
				back := make([]int, len(oldFaces[f]))
				for i, v := range oldFaces[f] {
					back[len(back)-1-i] = v
				}
				m.AddFace(back, oldMat[f])
			}
		}

		reg.CapFaces = caps
		for ci, c := range reg.Contours {
			lifted := make([]int, len(c.Verts))
			for i, v := range c.Verts {
				lifted[i] = top(v)
			}
			reg.Contours[ci].Verts = lifted
		}
	}
}
