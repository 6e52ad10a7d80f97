package vecmodel

import "image/color"

// Contour is a closed loop of vertex indices bordering a region face.
// Outer contours run counter-clockwise, holes clockwise (seen from +z).
type Contour struct {
	Verts []int
	Hole  bool
}

// Region keeps the face-level structure of one filled area after
// triangulation: its boundary contours, the indices (into Mesh.Faces)
// of its cap faces, and its material.
type Region struct {
	Contours []Contour // element 0 is the outer boundary
	CapFaces []int
	Material int // index into Mesh.Materials, -1 for none
}

// Mesh is an indexed face set with optional per-face materials.
type Mesh struct {
	Points    *Points3
	Faces     [][]int
	FaceMat   []int // parallel to Faces, -1 for no material
	Materials []color.RGBA
	Regions   []Region
}

func NewMesh() *Mesh {
	return &Mesh{Points: NewPoints3()}
}

func (m *Mesh) AddFace(verts []int, mat int) int {
	i := len(m.Faces)
	m.Faces = append(m.Faces, verts)
	m.FaceMat = append(m.FaceMat, mat)
	return i
}

// VertexCount and FaceCount feed the import summary.
func (m *Mesh) VertexCount() int { return len(m.Points.Pos) }

func (m *Mesh) FaceCount() int { return len(m.Faces) }
