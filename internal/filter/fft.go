package filter

import (
	"fmt"
	"math/bits"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/gogpu/crt/internal/cache"
	"github.com/gogpu/crt/internal/image"
	"github.com/gogpu/crt/internal/parallel"
)

// FFTGaussianBlur is a separable Gaussian convolution computed in the
// frequency domain.
//
// Rows are zero-padded, so it behaves like a constant-mode convolution with
// a unit-sum kernel truncated at 4 sigma: interiors match GaussianBlur and
// edges darken instead of being renormalized.
type FFTGaussianBlur struct {
	Sigma float64
}

// Blur applies a horizontal and a vertical pass. Sigma <= 0 returns a copy.
func (g *FFTGaussianBlur) Blur(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	if g.Sigma <= 0 {
		return src.Clone(), nil
	}

	cur := src
	for range 2 {
		next, err := g.pass(pool, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// pass convolves every row of src and writes the result transposed.
func (g *FFTGaussianBlur) pass(pool *parallel.WorkerPool, src *image.Buf) (*image.Buf, error) {
	dst, err := image.New(src.Height(), src.Width(), src.Encoding())
	if err != nil {
		return nil, err
	}

	kernel := CachedGaussianKernel(g.Sigma)
	radius := len(kernel) / 2
	w := src.Width()
	fftSize := nextPowerOf2(max(w+radius, len(kernel)))

	kernelFFT, err := spectra.Load(spectrumKey{g.Sigma, fftSize}, func() ([]complex128, error) {
		return kernelSpectrum(kernel, fftSize)
	})
	if err != nil {
		return nil, err
	}

	var firstErr errOnce
	pool.ForRows(src.Height(), func(start, end int) {
		// Plans keep scratch state, so each chunk gets its own.
		plan, err := algofft.NewPlan64(fftSize)
		if err != nil {
			firstErr.set(fmt.Errorf("filter: failed to create FFT plan: %w", err))
			return
		}
		buf := make([]complex128, fftSize)

		for y := start; y < end; y++ {
			row := src.Row(y)
			for c := range image.Channels {
				clear(buf)
				for x := range w {
					buf[x] = complex(row[x*image.Channels+c], 0)
				}
				if err := plan.Forward(buf, buf); err != nil {
					firstErr.set(fmt.Errorf("filter: forward FFT failed: %w", err))
					return
				}
				for i := range buf {
					buf[i] *= kernelFFT[i]
				}
				if err := plan.Inverse(buf, buf); err != nil {
					firstErr.set(fmt.Errorf("filter: inverse FFT failed: %w", err))
					return
				}
				for x := range w {
					dst.Row(x)[y*image.Channels+c] = real(buf[x])
				}
			}
		}
	})
	if err := firstErr.get(); err != nil {
		return nil, err
	}
	return dst, nil
}

// spectrumKey identifies a kernel spectrum by sigma and transform size.
type spectrumKey struct {
	sigma float64
	size  int
}

// spectra holds transformed kernels so repeated passes and renders skip the
// kernel FFT.
var spectra = cache.New[spectrumKey, []complex128](8)

// kernelSpectrum places the centered kernel circularly in an fftSize buffer
// (offset k at index k mod fftSize) and transforms it. fftSize must be at
// least len(kernel) so offsets do not alias.
func kernelSpectrum(kernel []float64, fftSize int) ([]complex128, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to create FFT plan: %w", err)
	}

	radius := len(kernel) / 2
	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		k := i - radius
		if k < 0 {
			k += fftSize
		}
		padded[k] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return nil, fmt.Errorf("filter: failed to compute kernel FFT: %w", err)
	}
	return spectrum, nil
}

// errOnce keeps the first error reported by concurrent row chunks.
type errOnce struct {
	mu  sync.Mutex
	err error
}

func (e *errOnce) set(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
}

func (e *errOnce) get() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
