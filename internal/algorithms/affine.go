// 2x3 affine matrices used by rotate, scale and translate
package algorithms

import "math"

// Affine is the 2x3 matrix
//
//	| A  B  C |
//	| D  E  F |
//
// mapping (x, y) to (A*x + B*y + C, D*x + E*y + F) in image coordinates
// (x to the right, y down).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the matrix that leaves every point in place.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation shifts points by (tx, ty).
func Translation(tx, ty float64) Affine {
	return Affine{A: 1, C: tx, E: 1, F: ty}
}

// Scaling scales points by (sx, sy) about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// RotationAt rotates points by angleDegrees about (cx, cy) with unit scale.
// Positive angles turn clockwise on screen.
//
// Sine and cosine within snapEpsilon of 0 or ±1 are snapped so quarter turns
// map integer coordinates to integer coordinates exactly.
func RotationAt(angleDegrees, cx, cy float64) Affine {
	rad := angleDegrees * math.Pi / 180
	sin, cos := snap(math.Sin(rad)), snap(math.Cos(rad))
	return Affine{
		A: cos, B: -sin, C: cx - cos*cx + sin*cy,
		D: sin, E: cos, F: cy - sin*cx - cos*cy,
	}
}

const snapEpsilon = 1e-12

func snap(v float64) float64 {
	switch {
	case math.Abs(v) < snapEpsilon:
		return 0
	case math.Abs(v-1) < snapEpsilon:
		return 1
	case math.Abs(v+1) < snapEpsilon:
		return -1
	}
	return v
}

// Multiply returns m·other: the result applies other first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Invert returns the inverse matrix; ok is false when m is singular.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	invDet := 1 / det
	return Affine{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// Apply maps the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}
