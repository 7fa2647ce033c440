package filter

import (
	"math"

	"github.com/gogpu/crt/internal/cache"
)

// gaussianTruncate is the window half-width in standard deviations.
const gaussianTruncate = 4

// GaussianRadius returns the half-width in pixels of the window used for a
// Gaussian of the given sigma: ceil(4*sigma).
func GaussianRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(gaussianTruncate * sigma))
}

// GaussianWeight returns the unnormalized Gaussian weight exp(-d²/(2σ²)).
func GaussianWeight(d, sigma float64) float64 {
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// GaussianKernel generates a 1D Gaussian kernel for the given sigma.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel size is 2*GaussianRadius(sigma)+1 and index i holds the
// weight for offset i-GaussianRadius(sigma).
//
// For sigma <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1.0}
	}

	halfSize := GaussianRadius(sigma)
	size := halfSize*2 + 1
	kernel := make([]float64, size)

	sum := 0.0
	for i := range size {
		kernel[i] = GaussianWeight(float64(i-halfSize), sigma)
		sum += kernel[i]
	}

	invSum := 1.0 / sum
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// BoxRadius returns the box radius whose passes-fold repetition best
// approximates a Gaussian of the given sigma: round((sqrt(12σ²/n+1)-1)/2).
func BoxRadius(sigma float64, passes int) int {
	if sigma <= 0 || passes <= 0 {
		return 0
	}
	return int(math.Round((math.Sqrt(12*sigma*sigma/float64(passes)+1) - 1) / 2))
}

// kernels holds recently used Gaussian kernels keyed by sigma.
var kernels = cache.New[float64, []float64](16)

// CachedGaussianKernel returns a cached Gaussian kernel for sigma.
// The returned slice is shared and must not be modified.
func CachedGaussianKernel(sigma float64) []float64 {
	return kernels.GetOrCreate(sigma, func() []float64 { return GaussianKernel(sigma) })
}
