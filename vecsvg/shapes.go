package vecsvg

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"golang.org/x/image/math/fixed"
)

// high level shapes reduced to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to
// span when approximating an elliptical arc.
const maxDx float64 = math.Pi / 8

// control point distance for a quarter circle cubic
const quarterKappa = 0.5522847498307936

func toFixedP(x, y float64) fixed.Point26_6 { return vecdoc.ToFixed(x, y) }

// addEllipse traces a full ellipse as four cubic quadrants.
func addEllipse(b *vecdoc.PathBuilder, cx, cy, rx, ry float64) {
	kx, ky := quarterKappa*rx, quarterKappa*ry
	b.Start(toFixedP(cx+rx, cy))
	b.CubeBezier(toFixedP(cx+rx, cy+ky), toFixedP(cx+kx, cy+ry), toFixedP(cx, cy+ry))
	b.CubeBezier(toFixedP(cx-kx, cy+ry), toFixedP(cx-rx, cy+ky), toFixedP(cx-rx, cy))
	b.CubeBezier(toFixedP(cx-rx, cy-ky), toFixedP(cx-kx, cy-ry), toFixedP(cx, cy-ry))
	b.CubeBezier(toFixedP(cx+kx, cy-ry), toFixedP(cx+rx, cy-ky), toFixedP(cx+rx, cy))
	b.Stop(true)
}

// addRoundRect traces a rectangle, with quarter ellipse corners
// when rx and ry are positive.
func addRoundRect(b *vecdoc.PathBuilder, minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		b.Start(toFixedP(minX, minY))
		b.Line(toFixedP(maxX, minY))
		b.Line(toFixedP(maxX, maxY))
		b.Line(toFixedP(minX, maxY))
		b.Stop(true)
		return
	}
	if w := maxX - minX; rx*2 > w {
		rx = w / 2
	}
	if h := maxY - minY; ry*2 > h {
		ry = h / 2
	}
	kx, ky := quarterKappa*rx, quarterKappa*ry
	b.Start(toFixedP(minX+rx, minY))
	b.Line(toFixedP(maxX-rx, minY))
	b.CubeBezier(toFixedP(maxX-rx+kx, minY), toFixedP(maxX, minY+ry-ky), toFixedP(maxX, minY+ry))
	b.Line(toFixedP(maxX, maxY-ry))
	b.CubeBezier(toFixedP(maxX, maxY-ry+ky), toFixedP(maxX-rx+kx, maxY), toFixedP(maxX-rx, maxY))
	b.Line(toFixedP(minX+rx, maxY))
	b.CubeBezier(toFixedP(minX+rx-kx, maxY), toFixedP(minX, maxY-ry+ky), toFixedP(minX, maxY-ry))
	b.Line(toFixedP(minX, minY+ry))
	b.CubeBezier(toFixedP(minX, minY+ry-ky), toFixedP(minX+rx-kx, minY), toFixedP(minX+rx, minY))
	b.Stop(true)
}

// addArc appends an SVG elliptical arc from (px, py) to
// (x, y) as cubic splines, and returns the end point.
func addArc(b *vecdoc.PathBuilder, ra, rb, rotDeg float64, largeArc, sweep bool, px, py, x, y float64) (lx, ly float64) {
	if ra == 0 || rb == 0 {
		// degenerate radii draw a straight line
		b.Line(toFixedP(x, y))
		return x, y
	}
	ra, rb = math.Abs(ra), math.Abs(rb)
	rotX := rotDeg * math.Pi / 180
	cx, cy := findEllipseCenter(&ra, &rb, rotX, px, py, x, y, sweep, !largeArc)

	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(y-cy, x-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// ellipse parametric angles of the end points
	etaStart := math.Atan2(math.Sin(startAngle)/rb, math.Cos(startAngle)/ra)
	etaEnd := math.Atan2(math.Sin(endAngle)/rb, math.Cos(endAngle)/ra)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed when the center is at the midpoint of the
	// start and end points
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	// cubic spline approximation, after L. Maisonobe,
	// "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly = px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(ra, rb, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var ex, ey float64
		if i == segs {
			ex, ey = x, y // exact end point, no roundoff
		} else {
			ex, ey = ellipsePointAt(ra, rb, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(ra, rb, sinTheta, cosTheta, eta)
		b.CubeBezier(toFixedP(lx+alpha*ldx, ly+alpha*ldy),
			toFixedP(ex-alpha*dx, ey-alpha*dy), toFixedP(ex, ey))
		lx, ly, ldx, ldy = ex, ey, dx, dy
	}
	return lx, ly
}

// ellipsePrime gives the tangent vector of the parameterized
// ellipse at eta.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the arc's ellipse center. If no
// ellipse with the given radii reaches both end points, the
// radii are minimally enlarged, preserving their ratio. The
// problem reduces, by rotating and scaling, to finding the
// center of a circle through the origin and one other point.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// move the origin to the start point, align the axes
	nx, ny := endX-startX, endY-startY
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	nx *= *rb / *ra // now a circle of radius rb

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// requested ellipse does not exist, scale radii up
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
