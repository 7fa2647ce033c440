// Package mask models the phosphor layout of a CRT face.
//
// A mask is a linear image of per-channel transmission factors in [0,1],
// the same size as the rendered output. It comes from a procedural Pattern
// or from a user image resampled with FromImage, and is mixed into a
// render with Apply.
package mask

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/crt/internal/image"
)

// Mask errors.
var (
	// ErrInvalidPattern is returned for an unknown pattern type or a dark
	// level outside [0,1].
	ErrInvalidPattern = errors.New("mask: invalid pattern")

	// ErrEmptyMask is returned when a mask image has no lit pixel to
	// normalize against.
	ErrEmptyMask = errors.New("mask: empty mask")
)

// Type selects a phosphor layout.
type Type uint8

const (
	// TypeMG alternates magenta and green columns: three phosphors per two
	// pixels.
	TypeMG Type = iota
	// TypeSlot alternates MG rows with BGRK/RKBG subpixel rows, a slot mask
	// at three phosphors per two pixels.
	TypeSlot
	// TypeRYCB cycles red, yellow, cyan and blue columns: three phosphors per
	// four pixels.
	TypeRYCB

	typeCount
)

// String returns the name of the mask type.
func (t Type) String() string {
	switch t {
	case TypeMG:
		return "mg"
	case TypeSlot:
		return "slot"
	case TypeRYCB:
		return "rycb"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is a known mask type.
func (t Type) IsValid() bool {
	return t < typeCount
}

// Pattern is a procedural phosphor mask.
type Pattern struct {
	Type Type

	// Dark is the transmission of the unlit phosphors.
	Dark float64

	// Stagger shifts alternate groups of Stagger rows horizontally. Positive
	// values shift by half a mask period, negative values by two pixels.
	// Zero disables staggering.
	Stagger int
}

// Validate checks the pattern parameters.
func (p Pattern) Validate() error {
	if !p.Type.IsValid() {
		return fmt.Errorf("%w: type %d", ErrInvalidPattern, p.Type)
	}
	if !(p.Dark >= 0 && p.Dark <= 1) {
		return fmt.Errorf("%w: dark %v", ErrInvalidPattern, p.Dark)
	}
	return nil
}

// period returns the horizontal repeat of the layout in pixels.
func (t Type) period() float64 {
	if t == TypeRYCB {
		return 4
	}
	return 2
}

// At returns the mask value of pixel (px, py).
func (p Pattern) At(px, py int) image.Vec3 {
	x, y := float64(px), float64(py)
	switch {
	case p.Stagger > 0:
		s := float64(p.Stagger)
		x += 0.5 * p.Type.period() * math.Floor(glslMod(y, 2*s)/s)
	case p.Stagger < 0:
		s := float64(p.Stagger)
		x += 2 * math.Floor(glslMod(y, -2*s)/s)
	}

	d := p.Dark
	magenta := image.Vec3{1, d, 1}
	green := image.Vec3{d, 1, d}
	res := image.Vec3{d, d, d}

	switch p.Type {
	case TypeMG:
		if glslMod(x, 2) < 0.5 {
			return magenta
		}
		return green

	case TypeSlot:
		if glslMod(y, 2) < 0.5 {
			if glslMod(x, 2) < 0.5 {
				return magenta
			}
			return green
		}
		cx := math.Floor(x)
		cy := math.Floor(y * 0.5)
		cx += cy * 2
		switch f := fract(cx / 4); {
		case f < 0.25:
			res[2] = 1
		case f < 0.5:
			res[1] = 1
		case f < 0.75:
			res[0] = 1
		}

	case TypeRYCB:
		switch f := fract(x / 4); {
		case f < 0.25:
			res[0] = 1
		case f < 0.5:
			res[0], res[1] = 1, 1
		case f < 0.75:
			res[1], res[2] = 1, 1
		default:
			res[2] = 1
		}
	}
	return res
}

// Render draws the pattern into a w x h linear image.
func (p Pattern) Render(w, h int) (*image.Buf, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	buf, err := image.New(w, h, image.EncodingLinear)
	if err != nil {
		return nil, err
	}
	for y := range h {
		for x := range w {
			buf.Set(x, y, p.At(x, y))
		}
	}
	return buf, nil
}

// glslMod is x - y*floor(x/y), which keeps the sign of y.
func glslMod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// fract returns the fractional part x - floor(x).
func fract(x float64) float64 {
	return x - math.Floor(x)
}
