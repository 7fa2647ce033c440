// Package spot renders the electron beam of a CRT.
//
// A Renderer resamples a band-limited linear image onto the output raster.
// Every output pixel gathers light from the source samples of the nearest
// scanlines, each drawn as a Footprint whose width grows with brightness.
// Distances are measured in scanline heights; horizontal distances are
// scaled by delta, the ratio of source to output pixel aspect.
package spot

import (
	"fmt"
	"math"

	"github.com/gogpu/crt/internal/image"
	"github.com/gogpu/crt/internal/parallel"
)

// Scan selects which source scanlines contribute to an output row.
type Scan uint8

const (
	// ScanBlend draws the two scanlines bracketing the output row, so
	// adjacent lines overlap.
	ScanBlend Scan = iota
	// ScanProgressive draws only the scanline containing the output row.
	ScanProgressive

	scanCount
)

// String returns the name of the scan mode.
func (s Scan) String() string {
	switch s {
	case ScanBlend:
		return "blend"
	case ScanProgressive:
		return "progressive"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is a known scan mode.
func (s Scan) IsValid() bool {
	return s < scanCount
}

// Renderer draws a source image as CRT spots on a Width x Height raster.
type Renderer struct {
	// Width and Height are the output dimensions in pixels.
	Width, Height int

	// MaxSpot is the spot diameter of a white sample, in scanline heights.
	MaxSpot float64

	// OverscanH and OverscanV are the fractions of the source cropped off
	// horizontally and vertically.
	OverscanH, OverscanV float64

	Scan      Scan
	Footprint Footprint
}

// Validate checks the renderer configuration.
func (r *Renderer) Validate() error {
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("%w: output %dx%d", ErrInvalidParameters, r.Width, r.Height)
	case !(r.MaxSpot > 0) || math.IsInf(r.MaxSpot, 0):
		return fmt.Errorf("%w: max spot %v", ErrInvalidParameters, r.MaxSpot)
	case !(r.OverscanH >= 0 && r.OverscanH < 1) || !(r.OverscanV >= 0 && r.OverscanV < 1):
		return fmt.Errorf("%w: overscan %v/%v", ErrInvalidParameters, r.OverscanH, r.OverscanV)
	case !r.Scan.IsValid():
		return fmt.Errorf("%w: scan %d", ErrInvalidParameters, r.Scan)
	case r.Footprint == nil:
		return fmt.Errorf("%w: nil footprint", ErrInvalidParameters)
	}
	return nil
}

// Delta returns the horizontal distance scale for a source of the given
// size: (outW/outH)·(srcH/srcW)·(1-overscanV)/(1-overscanH).
func (r *Renderer) Delta(srcWidth, srcHeight int) float64 {
	aspect := float64(r.Width*srcHeight) / float64(r.Height*srcWidth)
	return aspect * (1 - r.OverscanV) / (1 - r.OverscanH)
}

// Render draws src, which must be linear, and returns a linear
// Width x Height image.
func (r *Renderer) Render(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if src.Encoding() != image.EncodingLinear {
		return nil, fmt.Errorf("%w: have %v, want %v", image.ErrEncodingMismatch, src.Encoding(), image.EncodingLinear)
	}

	dst, err := image.New(r.Width, r.Height, image.EncodingLinear)
	if err != nil {
		return nil, err
	}

	delta := r.Delta(src.Width(), src.Height())
	pool.ForRows(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := dst.Row(y)
			for x := range r.Width {
				v := r.pixel(src, x, y, delta)
				i := x * image.Channels
				row[i], row[i+1], row[i+2] = v[0], v[1], v[2]
			}
		}
	})
	return dst, nil
}

// pixel computes output pixel (x, y).
func (r *Renderer) pixel(src *image.Buf, x, y int, delta float64) image.Vec3 {
	srcW := float64(src.Width())
	srcH := float64(src.Height())

	u := (float64(x) + 0.5) / float64(r.Width)
	v := (float64(y) + 0.5) / float64(r.Height)
	u = (1-r.OverscanH)*(u-0.5) + 0.5
	v = (1-r.OverscanV)*(v-0.5) + 0.5

	px := u * srcW
	py := v * srcH

	var rows [2]int
	n := 0
	switch r.Scan {
	case ScanProgressive:
		rows[0] = int(math.Floor(py))
		n = 1
	default:
		rows[0] = image.RoundCoord(py)
		rows[1] = rows[0] - 1
		n = 2
	}

	reach := r.MaxSpot / delta
	first := image.RoundCoord(px - reach)
	last := image.RoundCoord(px + reach)

	var out image.Vec3
	for k := first; k < last; k++ {
		dx := delta * ((float64(k) + 0.5) - px)
		for _, sy := range rows[:n] {
			sample := src.TexelFetch(k, sy)
			if sample == (image.Vec3{}) {
				continue
			}
			dy := (float64(sy) + 0.5) - py
			out = out.Add(r.Footprint.Spot(sample, dx, dy))
		}
	}
	return out.Scale(delta)
}
