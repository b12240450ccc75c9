// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "math"

// Matrix is a 4x4 transformation matrix stored in column-major order, the
// layout WGSL's mat4x4<f32> expects:
//
//	| m[0] m[4] m[8]  m[12] |
//	| m[1] m[5] m[9]  m[13] |
//	| m[2] m[6] m[10] m[14] |
//	| m[3] m[7] m[11] m[15] |
//
// 2D content only uses the x, y and w rows, but keeping the full matrix lets
// the same value be uploaded to the vertex stage unchanged.
type Matrix [16]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MakeTranslation creates a translation matrix.
func MakeTranslation(x, y float64) Matrix {
	m := Identity()
	m[12] = x
	m[13] = y
	return m
}

// MakeScale creates a scaling matrix.
func MakeScale(x, y float64) Matrix {
	m := Identity()
	m[0] = x
	m[5] = y
	return m
}

// MakeRotationZ creates a rotation about the Z axis (angle in radians).
func MakeRotationZ(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0] = cos
	m[1] = sin
	m[4] = -sin
	m[5] = cos
	return m
}

// MakeSkew creates a shear matrix.
func MakeSkew(sx, sy float64) Matrix {
	m := Identity()
	m[4] = sx
	m[1] = sy
	return m
}

// MakeOrthographic maps the pixel space of a render target of the given size
// to normalized device coordinates: (0,0) becomes (-1,1) and (w,h) becomes
// (1,-1). Z is flattened to 0.5.
func MakeOrthographic(size ISize) Matrix {
	w := float64(max(size.Width, 1))
	h := float64(max(size.Height, 1))
	scale := Matrix{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	}
	translate := Identity()
	translate[12] = -1
	translate[13] = 1
	translate[14] = 0.5
	return translate.Multiply(scale)
}

// Multiply returns m * other. Applied to a point, other acts first.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies the transformation to a point, including the
// perspective divide when the matrix has a non-affine bottom row.
func (m Matrix) TransformPoint(p Point) Point {
	x := m[0]*p.X + m[4]*p.Y + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[13]
	w := m[3]*p.X + m[7]*p.Y + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Point{X: x, Y: y}
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	inv := m.cofactors()
	return m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
}

// IsInvertible reports whether the matrix has a usable inverse.
func (m Matrix) IsInvertible() bool {
	d := m.Determinant()
	return d != 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	inv, ok := m.InvertOK()
	if !ok {
		return Identity()
	}
	return inv
}

// InvertOK returns the inverse matrix and whether the inversion succeeded.
func (m Matrix) InvertOK() (Matrix, bool) {
	inv := m.cofactors()
	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), false
	}
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}

// Invert2D inverts the projective 2D part of the matrix (the x, y and w rows
// and columns) and returns it with an identity z row. It succeeds for
// matrices that flatten z, such as MakeOrthographic, where InvertOK fails.
func (m Matrix) Invert2D() (Matrix, bool) {
	a, b, c := m[0], m[4], m[12]
	d, e, f := m[1], m[5], m[13]
	g, h, i := m[3], m[7], m[15]
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), false
	}
	inv := 1 / det
	r := Identity()
	r[0] = (e*i - f*h) * inv
	r[4] = (c*h - b*i) * inv
	r[12] = (b*f - c*e) * inv
	r[1] = (f*g - d*i) * inv
	r[5] = (a*i - c*g) * inv
	r[13] = (c*d - a*f) * inv
	r[3] = (d*h - e*g) * inv
	r[7] = (b*g - a*h) * inv
	r[15] = (a*e - b*d) * inv
	return r, true
}

// cofactors returns the transposed cofactor matrix (the adjugate).
func (m Matrix) cofactors() Matrix {
	var inv Matrix
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]
	return inv
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslationOnly returns true if the matrix is only a translation.
func (m Matrix) IsTranslationOnly() bool {
	t := m
	t[12], t[13], t[14] = 0, 0, 0
	return t.IsIdentity()
}
