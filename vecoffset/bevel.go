package vecoffset

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecgeom"
	"github.com/benoitkugler/vecmesh/vecmodel"
)

// RegionResult records the outcome of beveling one mesh region.
type RegionResult struct {
	// Edges holds the terminal state of each outer boundary edge;
	// nil when the region was skipped entirely.
	Edges []EdgeState
	// Inset is the achieved horizontal offset distance.
	Inset float64
}

// Result is the outcome of one bevel pass over a mesh.
type Result struct {
	Regions  []RegionResult
	Warnings []vecdoc.GeometryWarning
}

// Apply insets the outer contour of every region front face by up to
// amount, raising the rim by inset*tan(pitch) and re-triangulating
// the cap over the inset contour. Only the first edge event per
// region is resolved: growth stops there for the whole contour and
// the colliding edge is reported Collided. Regions with holes are
// not beveled (holes would need their own outward growth) and keep
// their flat cap, with a warning.
//
// pitch is in degrees, in [0, 90).
func Apply(m *vecmodel.Mesh, amount, pitch float64) *Result {
	res := &Result{Regions: make([]RegionResult, len(m.Regions))}
	if amount <= 0 {
		return res
	}
	slope := math.Tan(pitch * math.Pi / 180)
	removed := make(map[int]bool)

	for r := range m.Regions {
		reg := &m.Regions[r]
		rr := &res.Regions[r]
		if len(reg.Contours) > 1 {
			res.Warnings = append(res.Warnings, vecdoc.GeometryWarning{
				PathIndex: r, Detail: "region with holes left unbeveled",
			})
			continue
		}
		outer := reg.Contours[0].Verts
		n := len(outer)
		if n < 3 {
			continue
		}
		zTop := m.Points.Pos[outer[0]].Z

		spokes := make([]spoke, n)
		for i, v := range outer {
			prev := m.Points.Pos[outer[(i+n-1)%n]].XY()
			next := m.Points.Pos[outer[(i+1)%n]].XY()
			spokes[i] = newSpoke(prev, m.Points.Pos[v].XY(), next)
		}

		// edge i joins spokes i and i+1
		first, firstEdge := math.Inf(1), -1
		for i := range spokes {
			t := meetTime(spokes[i], spokes[(i+1)%n])
			if t < first {
				first, firstEdge = t, i
			}
		}
		tEnd := math.Min(amount, first)
		rr.Edges = make([]EdgeState, n)
		for i := range rr.Edges {
			rr.Edges[i] = Terminated
		}
		if first <= amount {
			rr.Edges[firstEdge] = Collided
			res.Warnings = append(res.Warnings, vecdoc.GeometryWarning{
				PathIndex: r, Detail: "bevel growth truncated by edge event",
			})
		}
		rr.Inset = tEnd
		if tEnd < vecgeom.DistTol {
			continue
		}

		ends := make([]vecgeom.Point, n)
		for i := range spokes {
			ends[i] = spokes[i].at(tEnd)
		}
		if degenerateLoop(ends) {
			res.Warnings = append(res.Warnings, vecdoc.GeometryWarning{
				PathIndex: r, Detail: "inset contour collapsed, cap left flat",
			})
			for i := range rr.Edges {
				rr.Edges[i] = Collided
			}
			continue
		}
		rim := make([]int, n)
		zRim := zTop + tEnd*slope
		for i, p := range ends {
			rim[i] = m.Points.AddPoint(vecmodel.Point3{X: p.X, Y: p.Y, Z: zRim})
		}

		for i, a := range outer {
			b := outer[(i+1)%n]
			m.AddFace([]int{a, b, rim[(i+1)%n], rim[i]}, reg.Material)
		}

		at := func(i int) vecgeom.Point { return m.Points.Pos[i].XY() }
		tris, ok := vecmodel.Triangulate(rim, nil, at)
		if !ok {
			res.Warnings = append(res.Warnings, vecdoc.GeometryWarning{
				PathIndex: r, Detail: "inset cap only partially triangulated",
			})
		}
		for _, f := range reg.CapFaces {
			removed[f] = true
		}
		reg.CapFaces = reg.CapFaces[:0]
		for _, t := range tris {
			reg.CapFaces = append(reg.CapFaces, m.AddFace(t, reg.Material))
		}
		reg.Contours[0].Verts = rim
	}

	if len(removed) > 0 {
		compactFaces(m, removed)
	}
	return res
}

// degenerateLoop reports whether the inset contour collapsed onto
// fewer than three distinct points or lost its positive area.
func degenerateLoop(ends []vecgeom.Point) bool {
	distinct := 0
	for i, p := range ends {
		fresh := true
		for _, q := range ends[:i] {
			if p.Near(q) {
				fresh = false
				break
			}
		}
		if fresh {
			distinct++
		}
	}
	if distinct < 3 {
		return true
	}
	area := 0.0
	for i, p := range ends {
		area += p.Cross(ends[(i+1)%len(ends)])
	}
	return area <= vecgeom.DistTol*vecgeom.DistTol
}

// compactFaces drops the faces replaced by inset caps and remaps the
// face indices held by region records.
func compactFaces(m *vecmodel.Mesh, removed map[int]bool) {
	remap := make([]int, len(m.Faces))
	faces := m.Faces[:0]
	mats := m.FaceMat[:0]
	for i, f := range m.Faces {
		if removed[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(faces)
		faces = append(faces, f)
		mats = append(mats, m.FaceMat[i])
	}
	m.Faces, m.FaceMat = faces, mats
	for r := range m.Regions {
		reg := &m.Regions[r]
		kept := reg.CapFaces[:0]
		for _, f := range reg.CapFaces {
			if nf := remap[f]; nf >= 0 {
				kept = append(kept, nf)
			}
		}
		reg.CapFaces = kept
	}
}
