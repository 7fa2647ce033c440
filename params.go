package crt

import (
	"fmt"
	"math"

	"github.com/gogpu/crt/internal/filter"
	"github.com/gogpu/crt/internal/mask"
	"github.com/gogpu/crt/internal/spot"
)

// WorkingSpace selects how encoded input bytes become the gamma-encoded
// signal that is band-limited.
type WorkingSpace uint8

const (
	// WorkingSpaceRaw treats the stored bytes directly as a CRT gamma
	// signal (bytes/255).
	WorkingSpaceRaw WorkingSpace = iota
	// WorkingSpaceSRGB decodes sRGB and re-encodes with Params.Gamma.
	WorkingSpaceSRGB
	// WorkingSpaceGamma22 treats the input as gamma 2.2 and re-encodes with
	// Params.Gamma.
	WorkingSpaceGamma22
	// WorkingSpaceYIQ decodes sRGB, re-encodes with Params.Gamma and
	// band-limits in NTSC YIQ.
	WorkingSpaceYIQ

	workingSpaceCount
)

// String returns the name of the working space.
func (w WorkingSpace) String() string {
	switch w {
	case WorkingSpaceRaw:
		return "raw"
	case WorkingSpaceSRGB:
		return "srgb"
	case WorkingSpaceGamma22:
		return "gamma22"
	case WorkingSpaceYIQ:
		return "yiq"
	default:
		return "unknown"
	}
}

// BloomMethod selects the blur used for bloom.
type BloomMethod uint8

const (
	// BloomGaussian is a direct separable Gaussian with edge renormalization.
	BloomGaussian BloomMethod = iota
	// BloomBox approximates the Gaussian with repeated box passes.
	BloomBox
	// BloomFFT is a zero-padded Gaussian computed with FFTs.
	BloomFFT

	bloomMethodCount
)

// String returns the name of the bloom method.
func (b BloomMethod) String() string {
	switch b {
	case BloomGaussian:
		return "gaussian"
	case BloomBox:
		return "box"
	case BloomFFT:
		return "fft"
	default:
		return "unknown"
	}
}

// Spot renderer settings.
type (
	// Scan selects which scanlines contribute to an output row.
	Scan = spot.Scan
	// SpotShape selects the beam falloff curve.
	SpotShape = spot.Shape
	// Precision selects full or half precision spot arithmetic.
	Precision = spot.Precision
	// MaskType selects a procedural phosphor layout.
	MaskType = mask.Type
)

const (
	ScanBlend       = spot.ScanBlend
	ScanProgressive = spot.ScanProgressive

	SpotCubic     = spot.ShapeCubic
	SpotCosine    = spot.ShapeCosine
	SpotQuadratic = spot.ShapeQuadratic

	PrecisionFull = spot.PrecisionFull
	PrecisionHalf = spot.PrecisionHalf

	MaskMG   = mask.TypeMG
	MaskSlot = mask.TypeSlot
	MaskRYCB = mask.TypeRYCB
)

// Params holds every numeric setting of the simulation. The zero value is
// not usable; start from DefaultParams.
type Params struct {
	// Cutoff is the per-channel -6 dB bandwidth of the video signal in Hz.
	Cutoff [3]float64

	// ActiveLineTime is the visible duration of one scanline in seconds.
	ActiveLineTime float64

	// OutputWidth and OutputHeight are the rendered size in pixels.
	OutputWidth, OutputHeight int

	// MinSpotSize is the width of a black spot relative to MaxSpotSize.
	MinSpotSize float64
	// MaxSpotSize is the width of a white spot in scanline heights.
	MaxSpotSize float64

	// BlurSigma is the bloom sigma as a fraction of OutputHeight.
	BlurSigma float64
	// BlurAmount mixes the bloom into the image; 0 disables bloom.
	BlurAmount float64

	// Samples is the number of band-limited samples per scanline.
	Samples int

	// OverscanHorizontal and OverscanVertical are the fractions of the
	// picture cropped at the edges of the tube.
	OverscanHorizontal, OverscanVertical float64

	Precision Precision

	// Gamma is the CRT transfer exponent.
	Gamma float64

	WorkingSpace WorkingSpace
	Scan         Scan
	SpotShape    SpotShape
	Bloom        BloomMethod

	// BoxIterations is the number of horizontal+vertical pass pairs used by
	// BloomBox.
	BoxIterations int

	// MaskType selects the procedural mask used when no mask image is set.
	MaskType MaskType
	// MaskAmount mixes the phosphor mask into the image; 0 disables it.
	MaskAmount float64
	// MaskDark is the transmission of unlit phosphors.
	MaskDark float64
	// MaskStagger shifts alternate groups of rows of the mask.
	MaskStagger int
}

// DefaultParams returns the reference settings: an NTSC-like 2.6 MHz signal
// rendered to 2880x2160.
func DefaultParams() Params {
	return Params{
		Cutoff:             [3]float64{2.6e6, 2.6e6, 2.6e6},
		ActiveLineTime:     53.33e-6,
		OutputWidth:        2880,
		OutputHeight:       2160,
		MinSpotSize:        0.5,
		MaxSpotSize:        0.95,
		BlurSigma:          0.04,
		BlurAmount:         0.15,
		Samples:            9000,
		OverscanHorizontal: 0.05,
		OverscanVertical:   0.05,
		Precision:          PrecisionFull,
		Gamma:              2.4,
		WorkingSpace:       WorkingSpaceRaw,
		Scan:               ScanBlend,
		SpotShape:          SpotCubic,
		Bloom:              BloomGaussian,
		BoxIterations:      filter.DefaultBoxIterations,
		MaskType:           MaskMG,
		MaskAmount:         0,
		MaskDark:           0.5,
	}
}

// HalfWidths returns the per-channel raised-cosine half-widths
// L = 1/(2·cutoff·activeLineTime) in normalized line time.
func (p Params) HalfWidths() [3]float64 {
	var l [3]float64
	for c, hz := range p.Cutoff {
		l[c] = filter.HalfWidth(hz, p.ActiveLineTime)
	}
	return l
}

// BlurSigmaPixels returns the bloom sigma in output pixels.
func (p Params) BlurSigmaPixels() float64 {
	return p.BlurSigma * float64(p.OutputHeight)
}

// Validate reports the first parameter outside its domain, wrapped in
// ErrInvalidParameters.
func (p Params) Validate() error {
	for c, hz := range p.Cutoff {
		if !positive(hz) {
			return invalid("cutoff[%d] must be positive, got %v", c, hz)
		}
	}
	switch {
	case !positive(p.ActiveLineTime):
		return invalid("active line time must be positive, got %v", p.ActiveLineTime)
	case p.OutputWidth <= 0 || p.OutputHeight <= 0:
		return invalid("output size must be positive, got %dx%d", p.OutputWidth, p.OutputHeight)
	case p.Samples <= 0:
		return invalid("samples must be positive, got %d", p.Samples)
	case !positive(p.MaxSpotSize):
		return invalid("max spot size must be positive, got %v", p.MaxSpotSize)
	case !(p.MinSpotSize > 0 && p.MinSpotSize <= 1):
		return invalid("min spot size must be in (0,1], got %v", p.MinSpotSize)
	case !positive(p.BlurSigma):
		return invalid("blur sigma must be positive, got %v", p.BlurSigma)
	case !unit(p.BlurAmount):
		return invalid("blur amount must be in [0,1], got %v", p.BlurAmount)
	case !(p.OverscanHorizontal >= 0 && p.OverscanHorizontal < 1):
		return invalid("horizontal overscan must be in [0,1), got %v", p.OverscanHorizontal)
	case !(p.OverscanVertical >= 0 && p.OverscanVertical < 1):
		return invalid("vertical overscan must be in [0,1), got %v", p.OverscanVertical)
	case !positive(p.Gamma):
		return invalid("gamma must be positive, got %v", p.Gamma)
	case p.WorkingSpace >= workingSpaceCount:
		return invalid("unknown working space %d", p.WorkingSpace)
	case !p.Scan.IsValid():
		return invalid("unknown scan mode %d", p.Scan)
	case !p.SpotShape.IsValid():
		return invalid("unknown spot shape %d", p.SpotShape)
	case !p.Precision.IsValid():
		return invalid("unknown precision %d", p.Precision)
	case p.Precision == PrecisionHalf && p.SpotShape != SpotCubic:
		return invalid("half precision requires the cubic spot, got %v", p.SpotShape)
	case p.Bloom >= bloomMethodCount:
		return invalid("unknown bloom method %d", p.Bloom)
	case p.Bloom == BloomBox && p.BoxIterations <= 0:
		return invalid("box iterations must be positive, got %d", p.BoxIterations)
	case !p.MaskType.IsValid():
		return invalid("unknown mask type %d", p.MaskType)
	case !unit(p.MaskAmount):
		return invalid("mask amount must be in [0,1], got %v", p.MaskAmount)
	case !unit(p.MaskDark):
		return invalid("mask dark must be in [0,1], got %v", p.MaskDark)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameters}, args...)...)
}

// positive reports whether v is finite and greater than zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// unit reports whether v is in [0,1].
func unit(v float64) bool {
	return v >= 0 && v <= 1
}
