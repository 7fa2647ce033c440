// Package image provides the float image buffer shared by the crt kernels.
//
// A Buf is a rectangular grid of 3-component color vectors stored row-major
// in a single []float64 slice, tagged with the encoding its values are in.
// Kernels read Bufs concurrently and never mutate their input.
package image

import (
	"errors"
	"fmt"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive,
	// or when two buffers that must match in shape do not.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidEncoding is returned when the encoding tag is not recognized.
	ErrInvalidEncoding = errors.New("image: invalid encoding")

	// ErrEncodingMismatch is returned when a buffer is not in the encoding an
	// operation expects.
	ErrEncodingMismatch = errors.New("image: encoding mismatch")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// Channels is the number of color components stored per pixel.
const Channels = 3

// Vec3 is a 3-component color vector.
type Vec3 [3]float64

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Max returns the largest component of v.
func (v Vec3) Max() float64 {
	return max(v[0], v[1], v[2])
}

// Mix linearly interpolates between a and b: a*(1-t) + b*t.
func Mix(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a[0]*(1-t) + b[0]*t,
		a[1]*(1-t) + b[1]*t,
		a[2]*(1-t) + b[2]*t,
	}
}

// Buf is a height x width grid of Vec3 values with an encoding tag.
//
// Thread safety: Buf is safe for concurrent read access. Concurrent writes
// are safe only when each goroutine writes a disjoint set of rows.
type Buf struct {
	pix    []float64
	width  int
	height int
	enc    Encoding
}

// New creates a zeroed buffer with the given dimensions and encoding.
func New(width, height int, enc Encoding) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !enc.IsValid() {
		return nil, ErrInvalidEncoding
	}

	return &Buf{
		pix:    make([]float64, width*height*Channels),
		width:  width,
		height: height,
		enc:    enc,
	}, nil
}

// FromPix wraps existing row-major data without copying.
// The caller must not modify pix while the Buf is in use.
func FromPix(pix []float64, width, height int, enc Encoding) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !enc.IsValid() {
		return nil, ErrInvalidEncoding
	}

	required := width * height * Channels
	if len(pix) < required {
		return nil, ErrDataTooSmall
	}

	return &Buf{
		pix:    pix[:required],
		width:  width,
		height: height,
		enc:    enc,
	}, nil
}

// NewLike allocates a zeroed buffer with the shape of b and the given encoding.
func (b *Buf) NewLike(enc Encoding) *Buf {
	return &Buf{
		pix:    make([]float64, len(b.pix)),
		width:  b.width,
		height: b.height,
		enc:    enc,
	}
}

// Clone creates a deep copy of the buffer.
func (b *Buf) Clone() *Buf {
	pix := make([]float64, len(b.pix))
	copy(pix, b.pix)

	return &Buf{
		pix:    pix,
		width:  b.width,
		height: b.height,
		enc:    b.enc,
	}
}

// Width returns the image width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *Buf) Bounds() (int, int) {
	return b.width, b.height
}

// Encoding returns the encoding tag.
func (b *Buf) Encoding() Encoding {
	return b.enc
}

// SameShape reports whether b and o have identical dimensions.
func (b *Buf) SameShape(o *Buf) bool {
	return b.width == o.width && b.height == o.height
}

// Pix returns the raw row-major data slice, Channels values per pixel.
func (b *Buf) Pix() []float64 {
	return b.pix
}

// Row returns the data for row y, or nil if y is out of bounds.
func (b *Buf) Row(y int) []float64 {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.width * Channels
	return b.pix[start : start+b.width*Channels]
}

// At returns the pixel at (x, y). Coordinates must be in bounds.
func (b *Buf) At(x, y int) Vec3 {
	i := (y*b.width + x) * Channels
	return Vec3{b.pix[i], b.pix[i+1], b.pix[i+2]}
}

// Set stores v at (x, y). Coordinates must be in bounds.
func (b *Buf) Set(x, y int, v Vec3) {
	i := (y*b.width + x) * Channels
	b.pix[i] = v[0]
	b.pix[i+1] = v[1]
	b.pix[i+2] = v[2]
}

// Fill sets every pixel to v.
func (b *Buf) Fill(v Vec3) {
	for i := 0; i < len(b.pix); i += Channels {
		b.pix[i] = v[0]
		b.pix[i+1] = v[1]
		b.pix[i+2] = v[2]
	}
}
