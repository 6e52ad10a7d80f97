// Plane geometry support for the mesh pipeline:
// deduplicated point containers, polygons with holes,
// point-in-polygon classification and areas.
package vecgeom

import "math"

// distances below DistTol are considered essentially zero
const (
	DistTol    = 1e-3
	invDistTol = 1e3
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Mul(t float64) Point { return Point{p.X * t, p.Y * t} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length returns the Euclidean norm of p seen as a vector.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Normalized returns p scaled to unit length, or the zero
// point if p is shorter than DistTol.
func (p Point) Normalized() Point {
	l := p.Length()
	if l < DistTol {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Near reports whether p and q coincide up to DistTol
// in each coordinate.
func (p Point) Near(q Point) bool {
	return math.Abs(p.X-q.X) <= DistTol && math.Abs(p.Y-q.Y) <= DistTol
}

type quantized struct{ x, y int }

func quantize(p Point) quantized {
	return quantized{int(math.Round(p.X * invDistTol)), int(math.Round(p.Y * invDistTol))}
}

// Points stores positions without duplication, each mapped to
// a vertex index. Positions are quantized by 1/DistTol and the
// 9 buckets around a candidate are probed, so points closer
// than about DistTol share one index.
type Points struct {
	Pos    []Point
	invmap map[quantized]int
}

func NewPoints() *Points {
	return &Points{invmap: make(map[quantized]int)}
}

// AddPoint returns the vertex index for p, adding it
// if no existing point is within tolerance.
func (ps *Points) AddPoint(p Point) int {
	q := quantize(p)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if v, ok := ps.invmap[quantized{q.x + i, q.y + j}]; ok {
				return v
			}
		}
	}
	ps.invmap[q] = len(ps.Pos)
	ps.Pos = append(ps.Pos, p)
	return len(ps.Pos) - 1
}

// AddPoints unions other into ps and returns the mapping from
// indices in other to indices in ps.
func (ps *Points) AddPoints(other *Points) []int {
	vmap := make([]int, len(other.Pos))
	for i, p := range other.Pos {
		vmap[i] = ps.AddPoint(p)
	}
	return vmap
}
