package image

// Encoding identifies how the values stored in a Buf are to be interpreted.
type Encoding uint8

const (
	// EncodingByte holds display-encoded (sRGB) bytes as whole numbers in
	// [0, 255]. It is the state of decoded input and of final output.
	EncodingByte Encoding = iota

	// EncodingGamma holds gamma-encoded floats, nominally in [0, 1].
	// This is the working space the band-limit filter runs in.
	EncodingGamma

	// EncodingLinear holds unclamped linear-light floats.
	EncodingLinear

	// EncodingYIQ holds NTSC luma/chroma floats derived from gamma-encoded RGB.
	EncodingYIQ

	// encodingCount is the number of encodings (for internal use).
	encodingCount
)

// IsValid reports whether e is a known encoding.
func (e Encoding) IsValid() bool {
	return e < encodingCount
}

// IsFloat reports whether values in this encoding are unquantized floats.
func (e Encoding) IsFloat() bool {
	return e != EncodingByte && e.IsValid()
}

// String returns a string representation of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingByte:
		return "Byte"
	case EncodingGamma:
		return "Gamma"
	case EncodingLinear:
		return "Linear"
	case EncodingYIQ:
		return "YIQ"
	default:
		return "Unknown"
	}
}
