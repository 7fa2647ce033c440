package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/crt/internal/image"
	"github.com/gogpu/crt/internal/parallel"
)

// BandLimit is a horizontal low-pass filter modelling the limited analog
// bandwidth of a video signal.
//
// Each output sample integrates the source row, treated as a piecewise
// constant signal over normalized time t in [0,1], against a raised-cosine
// window of half-width L (one value per channel).
type BandLimit struct {
	// L is the per-channel window half-width in normalized line time.
	L image.Vec3

	// Samples is the number of output columns.
	Samples int
}

// HalfWidth returns the raised-cosine half-width for a -6 dB cutoff at
// cutoff Hz over a line of activeLineTime seconds: 1/(2*cutoff*activeLineTime).
func HalfWidth(cutoff, activeLineTime float64) float64 {
	return 1 / (2 * cutoff * activeLineTime)
}

// NewBandLimit creates a band-limit filter for per-channel cutoffs in Hz.
func NewBandLimit(cutoff [3]float64, activeLineTime float64, samples int) (*BandLimit, error) {
	if activeLineTime <= 0 || math.IsNaN(activeLineTime) {
		return nil, fmt.Errorf("%w: active line time %v", ErrInvalidParameters, activeLineTime)
	}
	if samples <= 0 {
		return nil, fmt.Errorf("%w: samples %d", ErrInvalidParameters, samples)
	}

	f := &BandLimit{Samples: samples}
	for c, hz := range cutoff {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return nil, fmt.Errorf("%w: cutoff[%d] %v", ErrInvalidParameters, c, hz)
		}
		f.L[c] = HalfWidth(hz, activeLineTime)
	}
	return f, nil
}

// Apply filters every row of src, producing src.Height() rows of f.Samples
// columns in the same encoding.
func (f *BandLimit) Apply(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	dst, err := image.New(f.Samples, src.Height(), src.Encoding())
	if err != nil {
		return nil, err
	}

	pool.ForRows(src.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			f.applyRow(src, dst.Row(y), y)
		}
	})
	return dst, nil
}

func (f *BandLimit) applyRow(src *image.Buf, out []float64, y int) {
	w := float64(src.Width())
	pixelWidth := 1 / w
	maxL := f.L.Max()

	var lRcp image.Vec3
	for c := range image.Channels {
		lRcp[c] = 1 / f.L[c]
	}

	for x := range f.Samples {
		t := (float64(x) + 0.5) / float64(f.Samples)
		first := int(math.Floor(w * (t - maxL)))
		last := int(math.Floor(w * (t + maxL)))

		var acc image.Vec3
		for px := first; px <= last; px++ {
			s := src.TexelFetch(px, y)
			if s == (image.Vec3{}) {
				continue
			}
			for c := range image.Channels {
				l := f.L[c]
				t0 := clamp(float64(px)*pixelWidth, t-l, t+l)
				t1 := clamp(float64(px)*pixelWidth+pixelWidth, t-l, t+l)
				acc[c] += 0.5 * s[c] * lRcp[c] * (t1 - t0 + (l/math.Pi)*
					(math.Sin(lRcp[c]*(math.Pi*t-math.Pi*t0))-math.Sin(lRcp[c]*(math.Pi*t-math.Pi*t1))))
			}
		}

		i := x * image.Channels
		out[i], out[i+1], out[i+2] = acc[0], acc[1], acc[2]
	}
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
