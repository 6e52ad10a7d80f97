package vecfill

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecgeom"
)

// combineSimplePolyAreas finds which simple polygons are
// contained in others and turns the contained ones into holes
// of their direct container. Input order is preserved for the
// resulting boundaries, so with coincident shapes the first
// declared wins as the outer boundary.
func combineSimplePolyAreas(simple []*vecgeom.PolyArea) []*vecgeom.PolyArea {
	n := len(simple)
	if n == 0 {
		return nil
	}

	areas := make([]float64, n)
	bboxes := make([]vecgeom.Rect, n)
	for i, pa := range simple {
		areas[i] = vecgeom.SignedArea(pa.Poly, pa.Points)
		bboxes[i] = vecgeom.Bounds(pa.Poly, pa.Points)
	}

	type pair struct{ in, on int }
	cls := make(map[[2]int]pair)
	classify := func(i, j int) pair {
		if p, ok := cls[[2]int{i, j}]; ok {
			return p
		}
		var p pair
		a, b := simple[i], simple[j]
		for _, v := range b.Poly {
			switch k := vecgeom.PointInside(b.Points.Pos[v], a.Poly, a.Points); {
			case k > 0:
				p.in++
			case k == 0:
				p.on++
			}
		}
		cls[[2]int{i, j}] = p
		return p
	}

	// contains(i, j): i holds the majority (55%) of j's
	// vertices; mutual containment broken by larger area
	contains := func(i, j int) bool {
		if i == j {
			return false
		}
		// cheap rejection before any point test
		if !outerBBox(bboxes[i]).Contains(bboxes[j]) {
			return false
		}
		cij := classify(i, j)
		nj := len(simple[j].Poly)
		if cij.in == 0 || cij.on == nj || float64(cij.in)/float64(nj) < 0.55 {
			return false
		}
		cji := classify(j, i)
		if float64(cji.in)/float64(len(simple[i].Poly)) > 0.55 {
			// mutual containment: the larger area wins; with
			// coincident shapes the first declared wins
			ai, aj := math.Abs(areas[i]), math.Abs(areas[j])
			return ai > aj || (ai == aj && i < j)
		}
		return true
	}

	cont := make(map[[2]int]bool)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if contains(i, j) {
				cont[[2]int{i, j}] = true
			}
		}
	}

	// nesting depth: number of polygons containing i.
	// Even depth polygons are boundaries of their own region,
	// odd depth polygons are holes of their direct container.
	depth := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cont[[2]int{j, i}] {
				depth[i]++
			}
		}
	}

	var out []*vecgeom.PolyArea
	for i := 0; i < n; i++ {
		if depth[i]%2 != 0 {
			continue
		}
		pa := simple[i]
		for j := 0; j < n; j++ {
			if depth[j] == depth[i]+1 && cont[[2]int{i, j}] {
				addHole(pa, simple[j])
			}
		}
		out = append(out, pa)
	}
	return out
}

// outerBBox expands a rectangle by the point tolerance, so
// borderline vertices do not defeat the rejection test.
func outerBBox(r vecgeom.Rect) vecgeom.Rect {
	return vecgeom.Rect{
		MinX: r.MinX - vecgeom.DistTol, MinY: r.MinY - vecgeom.DistTol,
		MaxX: r.MaxX + vecgeom.DistTol, MaxY: r.MaxY + vecgeom.DistTol,
	}
}

// addHole merges hole's points into pa and appends its contour,
// reversed to clockwise, as a hole.
func addHole(pa, hole *vecgeom.PolyArea) {
	vmap := pa.Points.AddPoints(hole.Points)
	contour := make([]int, len(hole.Poly))
	for i, v := range hole.Poly {
		contour[i] = vmap[v]
	}
	vecgeom.Reverse(contour)
	pa.Holes = append(pa.Holes, contour)
}
