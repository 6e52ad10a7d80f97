package vecgeom

import (
	"image/color"
	"math"
)

// PolyArea is a polygon with optional holes: Poly is the outer
// boundary in counterclockwise order, Holes are clockwise, all
// as indices into Points.
type PolyArea struct {
	Points *Points
	Poly   []int
	Holes  [][]int

	// fill color of the source path, if any
	Color    color.RGBA
	HasColor bool

	// index of the source path in the document, -1 when unknown
	PathIndex int
}

// PointInside returns 1, 0 or -1 as v is inside, on, or outside
// the polygon given by indices a into points (assumed CCW).
// Cf. Eric Haines' ptinpoly in Graphics Gems IV.
func PointInside(v Point, a []int, points *Points) int {
	if len(a) == 0 {
		return -1
	}
	p0 := points.Pos[a[len(a)-1]]
	if p0 == v {
		return 0
	}
	yflag0 := p0.Y > v.Y
	inside := false
	for _, vi := range a {
		p1 := points.Pos[vi]
		if p1 == v {
			return 0
		}
		yflag1 := p1.Y > v.Y
		if yflag0 != yflag1 {
			xflag0 := p0.X > v.X
			xflag1 := p1.X > v.X
			if xflag0 == xflag1 {
				if xflag0 {
					inside = !inside
				}
			} else {
				z := p1.X - (p1.Y-v.Y)*(p0.X-p1.X)/(p0.Y-p1.Y)
				if z >= v.X {
					inside = !inside
				}
			}
		}
		p0, yflag0 = p1, yflag1
	}
	if inside {
		return 1
	}
	return -1
}

// SignedArea returns the area of the polygon, positive if its
// vertices run counterclockwise, negative otherwise.
func SignedArea(polygon []int, points *Points) float64 {
	a := 0.0
	n := len(polygon)
	for i := 0; i < n; i++ {
		u := points.Pos[polygon[i]]
		v := points.Pos[polygon[(i+1)%n]]
		a += u.X*v.Y - u.Y*v.X
	}
	return 0.5 * a
}

// Reverse reverses the orientation of a polygon in place.
func Reverse(polygon []int) {
	for i, j := 0, len(polygon)-1; i < j; i, j = i+1, j-1 {
		polygon[i], polygon[j] = polygon[j], polygon[i]
	}
}

// Rect is an axis aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect returns a rectangle ready to accumulate points.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

func (r *Rect) AddPoint(p Point) {
	r.MinX = math.Min(r.MinX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MaxY = math.Max(r.MaxY, p.Y)
}

func (r *Rect) Union(other Rect) {
	r.MinX = math.Min(r.MinX, other.MinX)
	r.MinY = math.Min(r.MinY, other.MinY)
	r.MaxX = math.Max(r.MaxX, other.MaxX)
	r.MaxY = math.Max(r.MaxY, other.MaxY)
}

// IsEmpty reports whether no point was ever added.
func (r Rect) IsEmpty() bool { return r.MinX > r.MaxX }

// Contains reports whether other lies inside r (borders included).
func (r Rect) Contains(other Rect) bool {
	return r.MinX <= other.MinX && r.MinY <= other.MinY &&
		r.MaxX >= other.MaxX && r.MaxY >= other.MaxY
}

// LongestSide returns the larger of width and height.
func (r Rect) LongestSide() float64 {
	return math.Max(r.MaxX-r.MinX, r.MaxY-r.MinY)
}

// Bounds returns the bounding rectangle of a polygon.
func Bounds(polygon []int, points *Points) Rect {
	r := EmptyRect()
	for _, vi := range polygon {
		r.AddPoint(points.Pos[vi])
	}
	return r
}
