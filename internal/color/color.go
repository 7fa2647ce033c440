// Package color provides the color space conversions of the crt pipeline.
//
// Scalar curves (sRGB EOTF/OETF, simple power-law gamma) live in convert.go,
// a byte decode lookup table in lut.go, and whole-image transforms between
// buffer encodings in transform.go.
package color

import "github.com/gogpu/crt/internal/image"

// Matrix is a row-major 3x3 color matrix.
type Matrix [3][3]float64

// RGBToYIQ is the NTSC RGB to YIQ matrix, applied to gamma-encoded RGB.
var RGBToYIQ = Matrix{
	{0.30, 0.59, 0.11},
	{0.599, -0.2773, -0.3217},
	{0.213, -0.5251, 0.3121},
}

// YIQToRGB is the exact inverse of RGBToYIQ.
var YIQToRGB = mustInverse(RGBToYIQ)

// Apply multiplies the matrix by the column vector v.
func (m Matrix) Apply(v image.Vec3) image.Vec3 {
	return image.Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Determinant returns the determinant of m.
func (m Matrix) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse of m, or false if m is singular.
func (m Matrix) Inverse() (Matrix, bool) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, false
	}
	inv := 1 / det

	// Adjugate (transposed cofactors) scaled by 1/det.
	return Matrix{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}, true
}

func mustInverse(m Matrix) Matrix {
	inv, ok := m.Inverse()
	if !ok {
		panic("color: singular matrix")
	}
	return inv
}
