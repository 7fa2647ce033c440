package image

import "math"

// RoundCoord rounds a continuous pixel coordinate to the nearest integer,
// with halves rounding up (toward +Inf). All kernels use this rule so that
// anchors agree between the sampler, the spot renderer and the blur.
func RoundCoord(x float64) int {
	return int(math.Floor(x + 0.5))
}

// TexelFetch returns the pixel at (x, y), or the zero vector when the
// coordinate lies outside [0,width) x [0,height).
//
// The zero border is what gives every downstream kernel its edge falloff;
// it is not an error condition.
func (b *Buf) TexelFetch(x, y int) Vec3 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Vec3{}
	}
	i := (y*b.width + x) * Channels
	return Vec3{b.pix[i], b.pix[i+1], b.pix[i+2]}
}

// Texture samples the buffer with bilinear interpolation over a zero border.
//
// The lookup position is derived from u alone: u is scaled by the width for
// the column and by the height for the row, and v does not take part. The
// 2x2 neighborhood ends at the rounded anchor, and the upper row blends
// (v01, v00) in that order.
func (b *Buf) Texture(u, v float64) Vec3 {
	_ = v

	lx := u * float64(b.width)
	ly := u * float64(b.height)
	cx := RoundCoord(lx)
	cy := RoundCoord(ly)

	v11 := b.TexelFetch(cx, cy)
	v01 := b.TexelFetch(cx-1, cy)
	v10 := b.TexelFetch(cx, cy-1)
	v00 := b.TexelFetch(cx-1, cy-1)

	fy := ly - float64(cy) + 0.5
	fx := lx - float64(cx) + 0.5

	row1 := Mix(v10, v11, fy)
	row0 := Mix(v01, v00, fy)
	return Mix(row0, row1, fx)
}
