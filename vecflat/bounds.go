package vecflat

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecgeom"
)

// Exact bounds of the document's curves, needed to derive the
// Even target length before anything is flattened. Curve
// extrema are found at the roots of the coordinate derivatives.

// cubic polynomial coordinate:
// x = At^3 + Bt^2 + Ct + D
// derivative: 3At^2 + 2Bt + C, expanded below
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func evalCubic1D(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

func cubicBounds(c cubic) vecgeom.Rect {
	r := vecgeom.EmptyRect()
	r.AddPoint(c[0])
	r.AddPoint(c[3])

	aX, bX, cX := cubicDerivative(c[0].X, c[1].X, c[2].X, c[3].X)
	aY, bY, cY := cubicDerivative(c[0].Y, c[1].Y, c[2].Y, c[3].Y)
	for _, t := range append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...) {
		if !(0 < t && t < 1) {
			continue
		}
		r.AddPoint(vecgeom.Point{
			X: evalCubic1D(c[0].X, c[1].X, c[2].X, c[3].X, t),
			Y: evalCubic1D(c[0].Y, c[1].Y, c[2].Y, c[3].Y, t),
		})
	}
	return r
}

// PathBounds returns the bounding rectangle of every segment
// in the path, curves measured exactly.
func PathBounds(p vecdoc.Path) vecgeom.Rect {
	r := vecgeom.EmptyRect()
	for _, sp := range p.Subpaths {
		for _, seg := range sp.Segments {
			switch seg.Kind {
			case vecdoc.KindLine:
				r.AddPoint(toPoint(seg.Start))
				r.AddPoint(toPoint(seg.End))
			case vecdoc.KindCubic:
				r.Union(cubicBounds(cubic{
					toPoint(seg.Start), toPoint(seg.C1),
					toPoint(seg.C2), toPoint(seg.End),
				}))
			}
		}
	}
	return r
}
