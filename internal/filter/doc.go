// Package filter provides the resampling and diffusion filters of the crt
// pipeline.
//
// This package contains:
//   - Band-limit filter (raised-cosine horizontal low pass, resampling each
//     row to a fixed number of samples)
//   - Box blur (repeated running-sum passes, O(n) per radius)
//   - Gaussian blur (separable direct convolution, 4 sigma window)
//   - FFT Gaussian blur (separable zero-padded convolution through algo-fft)
//   - Bloom composite (block math through algo-vecmath)
//
// Every separable pass reads rows and writes its result transposed, so two
// passes leave the image in its original orientation. Pixels outside the
// image are zero, so blurred edges darken.
//
// All filters split work by output rows on a parallel.WorkerPool. A nil pool
// runs serially with identical results.
package filter
