package color

import "math"

// sRGBToLinearLUT provides O(1) sRGB byte to linear conversion.
// Pre-computed 256 entries; exact for integer byte inputs.
var sRGBToLinearLUT [256]float64

func init() {
	for i := range 256 {
		sRGBToLinearLUT[i] = SRGBToLinear(float64(i) / 255)
	}
}

// SRGBByteToLinear converts an sRGB byte to linear using the lookup table.
//
// Example:
//
//	r := SRGBByteToLinear(128) // ~0.2159 (not 0.5!)
func SRGBByteToLinear(s uint8) float64 {
	return sRGBToLinearLUT[s]
}

// SRGBByteToLinearSlow converts an sRGB byte to linear using math.Pow.
//
// This is the reference implementation. Used for testing and verification only.
func SRGBByteToLinearSlow(s uint8) float64 {
	sf := float64(s) / 255.0
	if sf <= 0.04045 {
		return sf / 12.92
	}
	return math.Pow((sf+0.055)/1.055, 2.4)
}

// decodeByte decodes one stored channel value of an EncodingByte buffer.
// Integer values in [0,255] use the table; anything else falls back to the
// scalar curve.
func decodeByte(v float64) float64 {
	if v >= 0 && v <= 255 && v == math.Trunc(v) {
		return sRGBToLinearLUT[int(v)]
	}
	return SRGBToLinear(v / 255)
}
