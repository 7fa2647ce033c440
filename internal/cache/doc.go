// Package cache provides a small generic LRU cache for values that are
// expensive to derive from a few parameters, such as blur kernels and their
// spectra.
//
//	kernels := cache.New[float64, []float64](16)
//	k := kernels.GetOrCreate(sigma, func() []float64 { return build(sigma) })
//
// Cached values are shared between goroutines and must be treated as
// read-only.
package cache
