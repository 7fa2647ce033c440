package color

import "math"

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// The input is not clamped.
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(clamp(l), 1/2.4)-0.055
// Values on the linear branch are not clamped, so negative input stays
// negative; LinearToSRGBByte clamps before quantizing.
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(clamp01(l), 1.0/2.4) - 0.055
}

// LinearToSRGBByte encodes a linear component and quantizes it to [0,255]
// with round-half-to-even, the same rounding numpy applies.
func LinearToSRGBByte(l float64) uint8 {
	s := clamp01(LinearToSRGB(l))
	//nolint:gosec // G115: s is clamped to [0,1]
	return uint8(math.RoundToEven(s * 255))
}

// EncodeGamma applies a simple power-law encode, v^(1/gamma).
func EncodeGamma(v, gamma float64) float64 {
	return math.Pow(v, 1/gamma)
}

// DecodeGamma clamps v to [0,1] and applies v^gamma.
func DecodeGamma(v, gamma float64) float64 {
	return math.Pow(clamp01(v), gamma)
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
