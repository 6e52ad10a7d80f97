package vecflat

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecgeom"
	"golang.org/x/image/math/fixed"
)

// FlatSubpath is a polyline approximation of one subpath.
// For closed subpaths Pts is the vertex loop, without the
// first point repeated at the end.
type FlatSubpath struct {
	Pts    []vecgeom.Point
	Closed bool
}

type cubic [4]vecgeom.Point

func toPoint(p fixed.Point26_6) vecgeom.Point {
	return vecgeom.Point{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// flatness returns the maximum perpendicular deviation of the
// control points from the chord. A degenerate chord falls back
// to the control distance from the start point.
func flatness(c cubic) float64 {
	chord := c[3].Sub(c[0])
	l := chord.Length()
	if l < vecgeom.DistTol {
		return math.Max(c[1].Sub(c[0]).Length(), c[2].Sub(c[0]).Length())
	}
	d1 := math.Abs(chord.Cross(c[1].Sub(c[0]))) / l
	d2 := math.Abs(chord.Cross(c[2].Sub(c[0]))) / l
	return math.Max(d1, d2)
}

// splitCubic bisects c at t=1/2 (de Casteljau).
func splitCubic(c cubic) (left, right cubic) {
	ab := c[0].Add(c[1]).Mul(0.5)
	bc := c[1].Add(c[2]).Mul(0.5)
	cd := c[2].Add(c[3]).Mul(0.5)
	abc := ab.Add(bc).Mul(0.5)
	bcd := bc.Add(cd).Mul(0.5)
	mid := abc.Add(bcd).Mul(0.5)
	return cubic{c[0], ab, abc, mid}, cubic{mid, bcd, cd, c[3]}
}

type workItem struct {
	c     cubic
	depth int
}

// appendCubic flattens c onto dst, not emitting the start point.
// Subdivision runs over an explicit stack so that degenerate
// curves cannot overflow; depth is capped at maxDepth.
func appendCubic(dst []vecgeom.Point, c cubic, o Options) []vecgeom.Point {
	tol := o.Tolerance()
	stack := []workItem{{c, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var leaf bool
		if o.Policy == Uniform {
			leaf = it.depth >= o.Smoothness || it.depth >= maxDepth
		} else {
			leaf = it.depth >= maxDepth || flatness(it.c) <= tol
		}
		if leaf {
			dst = append(dst, it.c[3])
			continue
		}
		l, r := splitCubic(it.c)
		// right first, so the left half is processed first
		stack = append(stack, workItem{r, it.depth + 1}, workItem{l, it.depth + 1})
	}
	return dst
}

// resampleEven redistributes the interior points of a polyline
// so all pieces have about the target length. Both endpoints
// are kept exactly.
func resampleEven(pts []vecgeom.Point, target float64) []vecgeom.Point {
	if len(pts) < 2 || target <= 0 {
		return pts
	}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Length()
	}
	numsegs := int(math.Ceil(total / target))
	if numsegs < 1 {
		numsegs = 1
	}
	out := make([]vecgeom.Point, 0, numsegs+1)
	out = append(out, pts[0])
	step := total / float64(numsegs)
	acc := 0.0 // arc length consumed on the current piece
	next := 1  // index of next output point, 1..numsegs-1
	for i := 1; i < len(pts) && next < numsegs; i++ {
		seg := pts[i].Sub(pts[i-1])
		segLen := seg.Length()
		for next < numsegs && acc+segLen >= float64(next)*step-1e-12 {
			t := (float64(next)*step - acc) / segLen
			out = append(out, pts[i-1].Add(seg.Mul(t)))
			next++
		}
		acc += segLen
	}
	out = append(out, pts[len(pts)-1])
	return out
}

func appendEvenLine(dst []vecgeom.Point, start, end vecgeom.Point, target float64) []vecgeom.Point {
	pts := resampleEven([]vecgeom.Point{start, end}, target)
	return append(dst, pts[1:]...)
}

func appendEvenCubic(dst []vecgeom.Point, c cubic, o Options) []vecgeom.Point {
	// flatten first, then resample the polyline by arc length
	flat := appendCubic([]vecgeom.Point{c[0]}, c, Options{Policy: Adaptive, Smoothness: o.Smoothness})
	pts := resampleEven(flat, o.EvenLength)
	return append(dst, pts[1:]...)
}

// FlattenSubpath converts one subpath to a polyline under the
// given options. The subpath's end points are preserved exactly
// so closed loops stay closed.
func FlattenSubpath(sp vecdoc.Subpath, o Options) FlatSubpath {
	if len(sp.Segments) == 0 {
		return FlatSubpath{Closed: sp.Closed}
	}
	pts := []vecgeom.Point{toPoint(sp.Segments[0].Start)}
	for _, seg := range sp.Segments {
		start, end := toPoint(seg.Start), toPoint(seg.End)
		switch seg.Kind {
		case vecdoc.KindLine:
			if o.Policy == Even {
				pts = appendEvenLine(pts, start, end, o.EvenLength)
			} else {
				pts = append(pts, end)
			}
		case vecdoc.KindCubic:
			c := cubic{start, toPoint(seg.C1), toPoint(seg.C2), end}
			if o.Policy == Even {
				pts = appendEvenCubic(pts, c, o)
			} else {
				pts = appendCubic(pts, c, o)
			}
		}
	}
	if sp.Closed && len(pts) > 1 && pts[0].Near(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	return FlatSubpath{Pts: pts, Closed: sp.Closed}
}
