// Package vecmodel turns resolved filled regions into polygonal 3D
// meshes: triangulation of polygons with holes, uniform scaling and
// centering, extrusion with caps, and Wavefront OBJ export.
package vecmodel

import (
	"math"

	"github.com/benoitkugler/vecmesh/vecgeom"
)

// Point3 is a 3D position.
type Point3 struct {
	X, Y, Z float64
}

func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

func (p Point3) Mul(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }

// XY projects onto the z=0 plane.
func (p Point3) XY() vecgeom.Point { return vecgeom.Point{X: p.X, Y: p.Y} }

type quantized3 struct {
	x, y, z int64
}

// Points3 stores 3D vertices, deduplicating points closer than
// vecgeom.DistTol in x and y with an exactly matching z. The z
// coordinates produced by extrusion and beveling are exact copies of
// one another, so no probing is needed along that axis.
type Points3 struct {
	Pos    []Point3
	invmap map[quantized3]int
}

func NewPoints3() *Points3 {
	return &Points3{invmap: make(map[quantized3]int)}
}

func quantize3(p Point3) quantized3 {
	const inv = 1 / vecgeom.DistTol
	return quantized3{
		x: int64(math.Round(p.X * inv)),
		y: int64(math.Round(p.Y * inv)),
		z: int64(math.Round(p.Z * inv)),
	}
}

// AddPoint returns the index of p, inserting it if no existing point
// is within tolerance. The nine buckets around the quantized (x, y)
// cell are probed so that near-boundary duplicates are still found.
func (ps *Points3) AddPoint(p Point3) int {
	q := quantize3(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			if i, ok := ps.invmap[quantized3{q.x + dx, q.y + dy, q.z}]; ok {
				return i
			}
		}
	}
	i := len(ps.Pos)
	ps.Pos = append(ps.Pos, p)
	ps.invmap[q] = i
	return i
}

// AddPoints merges the 2D container other at height z and returns the
// mapping from other's indices to indices in ps.
func (ps *Points3) AddPoints(other *vecgeom.Points, z float64) []int {
	vmap := make([]int, len(other.Pos))
	for i, p := range other.Pos {
		vmap[i] = ps.AddPoint(Point3{X: p.X, Y: p.Y, Z: z})
	}
	return vmap
}

// rehash rebuilds the dedup index from the current positions. Needed
// after an in-place transform of Pos.
func (ps *Points3) rehash() {
	ps.invmap = make(map[quantized3]int, len(ps.Pos))
	for i := len(ps.Pos) - 1; i >= 0; i-- {
		ps.invmap[quantize3(ps.Pos[i])] = i
	}
}

// Bounds3 is an axis aligned 3D box.
type Bounds3 struct {
	Min, Max Point3
}

// Bounds returns the axis aligned box enclosing all vertices.
// The zero box is returned for an empty container.
func (ps *Points3) Bounds() Bounds3 {
	if len(ps.Pos) == 0 {
		return Bounds3{}
	}
	b := Bounds3{Min: ps.Pos[0], Max: ps.Pos[0]}
	for _, p := range ps.Pos[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}
