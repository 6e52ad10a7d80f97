// Package vecoffset grows a bevel rim from the front face of an
// extruded mesh. Each boundary vertex emits a spoke along its
// interior angle bisector; the offset wavefront advances at unit
// speed, so a spoke at a corner of half-angle a/2 travels at
// 1/sin(a/2). Growth stops at the requested bevel amount or at the
// first collision between adjacent spokes, whichever comes first.
package vecoffset

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecgeom"
)

const (
	tol      = 1e-7
	maxSpeed = 1e7
)

// EdgeState is the terminal state of one boundary edge after growth.
type EdgeState uint8

const (
	// Growing is the initial state, never observed after Apply.
	Growing EdgeState = iota
	// Collided edges had their growth cut short by an edge event.
	Collided
	// Terminated edges reached the full bevel amount.
	Terminated
)

func (s EdgeState) String() string {
	switch s {
	case Growing:
		return "growing"
	case Collided:
		return "collided"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// spoke is the growth ray of one boundary vertex.
type spoke struct {
	origin vecgeom.Point
	dir    vecgeom.Point // unit bisector, pointing into the face
	speed  float64
}

// newSpoke builds the spoke at vertex v with boundary neighbors prev
// and next, the contour being counter-clockwise.
func newSpoke(prev, v, next vecgeom.Point) spoke {
	uin := v.Sub(prev).Normalized()
	uout := next.Sub(v).Normalized()
	uavg := uin.Add(uout).Mul(0.5)
	var dir vecgeom.Point
	if uavg.Length() < tol {
		// 180 degree spike, bisector degenerates to the edge normal
		dir = vecgeom.Point{X: -uin.Y, Y: uin.X}
	} else {
		uavg = uavg.Normalized()
		dir = vecgeom.Point{X: -uavg.Y, Y: uavg.X}
	}

	// interior angle between the rays v->prev and v->next
	cos := prev.Sub(v).Normalized().Dot(next.Sub(v).Normalized())
	cos = math.Max(-1, math.Min(1, cos))
	half := math.Acos(cos) / 2
	speed := maxSpeed
	if s := math.Sin(half); s > 1/maxSpeed {
		speed = 1 / s
	}
	return spoke{origin: v, dir: dir, speed: speed}
}

// at returns the spoke end after the wavefront advanced by t.
func (s spoke) at(t float64) vecgeom.Point {
	return s.origin.Add(s.dir.Mul(s.speed * t))
}

// meetTime returns the wavefront time at which two adjacent spokes
// intersect, or +Inf when their rays are parallel or diverge.
func meetTime(a, b spoke) float64 {
	pp := a.dir.Cross(b.dir)
	if math.Abs(pp) < tol {
		return math.Inf(1)
	}
	w := a.origin.Sub(b.origin)
	si := b.dir.Cross(w) / pp
	ti := a.dir.Cross(w) / pp
	if si < 0 || ti < 0 {
		return math.Inf(1)
	}
	// si and ti are distances along the unit directions
	return math.Max(si/a.speed, ti/b.speed)
}
