package vecdoc

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is a 2-D affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns m * o, so o applies first.
func (m Matrix2D) Mult(o Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{A: x, D: y})
}

// Rotate appends a rotation of theta radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return m.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, C: math.Tan(theta)})
}

func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, B: math.Tan(theta)})
}

// Transform applies m to the point (x, y).
func (m Matrix2D) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformFixed applies m to a fixed point, rounding
// back to 26.6 precision.
func (m Matrix2D) TransformFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := m.Transform(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

// ToFixed converts float coordinates to a 26.6 fixed point.
func ToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
