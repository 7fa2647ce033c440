package spot

import (
	"fmt"
	"math"

	"github.com/x448/float16"

	"github.com/gogpu/crt/internal/image"
)

// Footprint is the intensity profile of the electron beam spot.
//
// Spot returns the light a source sample deposits at a distance (dx, dy)
// from its center, in scanline heights. Brighter samples draw wider spots.
type Footprint interface {
	Spot(sample image.Vec3, dx, dy float64) image.Vec3
}

// Shape selects the falloff curve of a footprint.
type Shape uint8

const (
	// ShapeCubic is the smoothstep falloff c²(2c-3)+1.
	ShapeCubic Shape = iota
	// ShapeCosine is the raised-cosine falloff 0.5cos(πc)+0.5.
	ShapeCosine
	// ShapeQuadratic is a piecewise quadratic falloff.
	ShapeQuadratic

	shapeCount
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCubic:
		return "cubic"
	case ShapeCosine:
		return "cosine"
	case ShapeQuadratic:
		return "quadratic"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is a known shape.
func (s Shape) IsValid() bool {
	return s < shapeCount
}

// Precision selects the arithmetic precision of a footprint.
type Precision uint8

const (
	// PrecisionFull evaluates footprints in float64.
	PrecisionFull Precision = iota
	// PrecisionHalf evaluates footprints in IEEE 754 binary16, rounding after
	// every operation.
	PrecisionHalf

	precisionCount
)

// String returns the name of the precision.
func (p Precision) String() string {
	switch p {
	case PrecisionFull:
		return "full"
	case PrecisionHalf:
		return "half"
	default:
		return "unknown"
	}
}

// IsValid reports whether p is a known precision.
func (p Precision) IsValid() bool {
	return p < precisionCount
}

// NewFootprint returns the footprint for a shape and precision. Spot widths
// range from maxSpot*minSpot for black samples up to maxSpot for white ones.
// Half precision is only available for ShapeCubic.
func NewFootprint(shape Shape, precision Precision, maxSpot, minSpot float64) (Footprint, error) {
	if !(maxSpot > 0) || !(minSpot > 0) || minSpot > 1 || math.IsInf(maxSpot, 0) {
		return nil, fmt.Errorf("%w: spot size max %v min %v", ErrInvalidParameters, maxSpot, minSpot)
	}
	if !precision.IsValid() {
		return nil, fmt.Errorf("%w: precision %d", ErrInvalidParameters, precision)
	}

	switch shape {
	case ShapeCubic:
		if precision == PrecisionHalf {
			return HalfCubic{Max: maxSpot, Min: minSpot}, nil
		}
		return Cubic{Max: maxSpot, Min: minSpot}, nil
	case ShapeCosine, ShapeQuadratic:
		if precision == PrecisionHalf {
			return nil, fmt.Errorf("%w: %v shape has no half precision form", ErrInvalidParameters, shape)
		}
		if shape == ShapeCosine {
			return Cosine{Max: maxSpot, Min: minSpot}, nil
		}
		return Quadratic{Max: maxSpot, Min: minSpot}, nil
	default:
		return nil, fmt.Errorf("%w: shape %d", ErrInvalidParameters, shape)
	}
}

// widthRcp returns the reciprocal spot width for a sample intensity.
func widthRcp(maxSpot, minSpot, s float64) float64 {
	return 1 / mix(maxSpot*minSpot, maxSpot, math.Sqrt(s))
}

// Cubic is the default footprint with a smoothstep falloff.
type Cubic struct {
	Max, Min float64
}

// Spot implements Footprint.
func (f Cubic) Spot(sample image.Vec3, dx, dy float64) image.Vec3 {
	var out image.Vec3
	for c, s := range sample {
		if s == 0 {
			continue
		}
		wr := widthRcp(f.Max, f.Min, s)
		x := clamp01(math.Abs(dx) * wr)
		y := clamp01(math.Abs(dy) * wr)
		out[c] = s * wr * ((x*x)*(2*x-3) + 1) * ((y*y)*(2*y-3) + 1)
	}
	return out
}

// Cosine is a footprint with a raised-cosine falloff.
type Cosine struct {
	Max, Min float64
}

// Spot implements Footprint.
func (f Cosine) Spot(sample image.Vec3, dx, dy float64) image.Vec3 {
	var out image.Vec3
	for c, s := range sample {
		if s == 0 {
			continue
		}
		wr := widthRcp(f.Max, f.Min, s)
		x := clamp01(math.Abs(dx) * wr)
		y := clamp01(math.Abs(dy) * wr)
		out[c] = s * wr * (0.5*math.Cos(math.Pi*x) + 0.5) * (0.5*math.Cos(math.Pi*y) + 0.5)
	}
	return out
}

// Quadratic is a footprint built from two quadratic segments meeting at
// half the spot width.
type Quadratic struct {
	Max, Min float64
}

// Spot implements Footprint.
func (f Quadratic) Spot(sample image.Vec3, dx, dy float64) image.Vec3 {
	var out image.Vec3
	for c, s := range sample {
		if s == 0 {
			continue
		}
		wr := widthRcp(f.Max, f.Min, s)
		x := math.Min(math.Abs(dx)*wr-0.5, 0.5)
		y := math.Min(math.Abs(dy)*wr-0.5, 0.5)
		out[c] = s * wr * (2*(x*math.Abs(x)-x) + 0.5) * (2*(y*math.Abs(y)-y) + 0.5)
	}
	return out
}

// HalfCubic is Cubic evaluated in binary16. Inputs are rounded to half
// precision and every intermediate result is rounded again.
type HalfCubic struct {
	Max, Min float64
}

// Spot implements Footprint.
func (f HalfCubic) Spot(sample image.Vec3, dx, dy float64) image.Vec3 {
	var out image.Vec3

	hdx := half(float32(math.Abs(dx)))
	hdy := half(float32(math.Abs(dy)))
	lo := half(float32(f.Max * f.Min))
	hi := half(float32(f.Max))

	for c, s64 := range sample {
		s := half(float32(s64))
		if s == 0 {
			continue
		}
		t := half(float32(math.Sqrt(float64(s))))
		width := half(half(lo*half(1-t)) + half(hi*t))
		wr := half(1 / width)

		x := clampHalf(half(hdx * wr))
		y := clampHalf(half(hdy * wr))
		fx := half(half(half(x*x)*half(half(2*x)-3)) + 1)
		fy := half(half(half(y*y)*half(half(2*y)-3)) + 1)

		out[c] = float64(half(half(half(s*wr)*fx) * fy))
	}
	return out
}

// half rounds a float32 to the nearest binary16 value.
func half(v float32) float32 {
	return float16.Fromfloat32(v).Float32()
}

func clampHalf(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mix linearly interpolates between a and b.
func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
