package vecmodel

import (
	"math"
	"sort"

	"github.com/benoitkugler/vecmesh/vecgeom"
)

const areaTol = 1e-9

// Triangulate cuts a polygon with holes into triangles by ear
// clipping. Holes are first joined to the outer boundary with bridge
// edges, turning the input into one simple (weakly) closed loop.
// The outer contour must be counter-clockwise and holes clockwise.
// It returns the triangles as index triples and false when the
// contour is too degenerate to clip completely.
func Triangulate(outer []int, holes [][]int, at func(int) vecgeom.Point) ([][]int, bool) {
	merged := bridgeHoles(outer, holes, at)
	if len(merged) < 3 {
		return nil, false
	}

	// positions into merged; bridge edges duplicate vertex indices,
	// so clipping works on loop positions, not on indices
	ind := make([]int, len(merged))
	for i := range ind {
		ind[i] = i
	}
	pt := func(pos int) vecgeom.Point { return at(merged[pos]) }

	var tris [][]int
	emit := func(a, b, c int) {
		p, q, r := pt(a), pt(b), pt(c)
		if math.Abs(triArea2(p, q, r)) > areaTol {
			tris = append(tris, []int{merged[a], merged[b], merged[c]})
		}
	}

	ok := true
	for len(ind) > 3 {
		clipped := false
		for i := 0; i < len(ind); i++ {
			prev := ind[(i+len(ind)-1)%len(ind)]
			cur := ind[i]
			next := ind[(i+1)%len(ind)]
			if !isEar(prev, cur, next, ind, merged, pt) {
				continue
			}
			emit(prev, cur, next)
			ind = append(ind[:i], ind[i+1:]...)
			clipped = true
			break
		}
		if clipped {
			continue
		}
		// no ear found: clip the first convex corner to make
		// progress, or give up on a fully degenerate remainder
		i := firstConvex(ind, pt)
		if i < 0 {
			ok = false
			break
		}
		emit(ind[(i+len(ind)-1)%len(ind)], ind[i], ind[(i+1)%len(ind)])
		ind = append(ind[:i], ind[i+1:]...)
		ok = false
	}
	if len(ind) == 3 {
		emit(ind[0], ind[1], ind[2])
	}
	return tris, ok
}

func triArea2(a, b, c vecgeom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

func isEar(prev, cur, next int, ind []int, merged []int, pt func(int) vecgeom.Point) bool {
	a, b, c := pt(prev), pt(cur), pt(next)
	if triArea2(a, b, c) <= areaTol { // reflex or flat corner
		return false
	}
	for _, p := range ind {
		if p == prev || p == cur || p == next {
			continue
		}
		// duplicates introduced by hole bridges refer to the same
		// vertex as one of the corners
		v := merged[p]
		if v == merged[prev] || v == merged[cur] || v == merged[next] {
			continue
		}
		if strictlyInTriangle(pt(p), a, b, c) {
			return false
		}
	}
	return true
}

func strictlyInTriangle(p, a, b, c vecgeom.Point) bool {
	return triArea2(a, b, p) > areaTol &&
		triArea2(b, c, p) > areaTol &&
		triArea2(c, a, p) > areaTol
}

func firstConvex(ind []int, pt func(int) vecgeom.Point) int {
	for i := range ind {
		a := pt(ind[(i+len(ind)-1)%len(ind)])
		b := pt(ind[i])
		c := pt(ind[(i+1)%len(ind)])
		if triArea2(a, b, c) > areaTol {
			return i
		}
	}
	return -1
}

// bridgeHoles splices every hole into the outer loop with a pair of
// coincident bridge edges. Each hole connects its rightmost vertex to
// the closest vertex of the loop built so far that it can reach
// without crossing an edge. Holes are processed rightmost first so a
// hole can bridge through a previously inserted one.
func bridgeHoles(outer []int, holes [][]int, at func(int) vecgeom.Point) []int {
	merged := append([]int(nil), outer...)
	if len(holes) == 0 {
		return merged
	}

	order := make([]int, len(holes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return maxX(holes[order[a]], at) > maxX(holes[order[b]], at)
	})

	for n, hi := range order {
		hole := holes[hi]
		if len(hole) < 3 {
			continue
		}
		hv := rightmost(hole, at)
		rest := [][]int{hole}
		for _, hj := range order[n+1:] {
			rest = append(rest, holes[hj])
		}
		b := bridgeTarget(at(hole[hv]), merged, rest, at)
		if b < 0 {
			continue // unreachable hole, dropped
		}
		spliced := make([]int, 0, len(merged)+len(hole)+2)
		spliced = append(spliced, merged[:b+1]...)
		spliced = append(spliced, hole[hv:]...)
		spliced = append(spliced, hole[:hv+1]...)
		spliced = append(spliced, merged[b:]...)
		merged = spliced
	}
	return merged
}

func maxX(loop []int, at func(int) vecgeom.Point) float64 {
	m := math.Inf(-1)
	for _, v := range loop {
		m = math.Max(m, at(v).X)
	}
	return m
}

func rightmost(loop []int, at func(int) vecgeom.Point) int {
	best := 0
	for i, v := range loop {
		if at(v).X > at(loop[best]).X {
			best = i
		}
	}
	return best
}

func bridgeTarget(from vecgeom.Point, merged []int, rest [][]int, at func(int) vecgeom.Point) int {
	best, bestD := -1, math.Inf(1)
	for i, v := range merged {
		to := at(v)
		d := to.Sub(from).Dot(to.Sub(from))
		if d >= bestD {
			continue
		}
		if segmentBlocked(from, to, merged, at) {
			continue
		}
		blocked := false
		for _, h := range rest {
			if segmentBlocked(from, to, h, at) {
				blocked = true
				break
			}
		}
		if !blocked {
			best, bestD = i, d
		}
	}
	return best
}

// segmentBlocked reports whether (p, q) properly crosses an edge of
// the loop. Edges touching either endpoint do not count.
func segmentBlocked(p, q vecgeom.Point, loop []int, at func(int) vecgeom.Point) bool {
	for i := range loop {
		a := at(loop[i])
		b := at(loop[(i+1)%len(loop)])
		if a.Near(p) || a.Near(q) || b.Near(p) || b.Near(q) {
			continue
		}
		if properCross(p, q, a, b) {
			return true
		}
	}
	return false
}

func properCross(p, q, a, b vecgeom.Point) bool {
	d1 := triArea2(p, q, a)
	d2 := triArea2(p, q, b)
	d3 := triArea2(a, b, p)
	d4 := triArea2(a, b, q)
	return ((d1 > areaTol && d2 < -areaTol) || (d1 < -areaTol && d2 > areaTol)) &&
		((d3 > areaTol && d4 < -areaTol) || (d3 < -areaTol && d4 > areaTol))
}
