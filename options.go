package crt

import (
	stdimage "image"
	"log/slog"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := crt.NewRenderer(crt.DefaultParams(),
//	    crt.WithWorkers(4),
//	    crt.WithDebugDir("/tmp/crt"),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	workers  int
	debugDir string
	mask     stdimage.Image
	logger   *slog.Logger
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		workers: 0, // GOMAXPROCS
	}
}

// WithWorkers sets the number of worker goroutines used by every kernel.
// Zero or a negative value uses GOMAXPROCS; 1 still runs through the pool.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithDebugDir makes Render write the filtered, spot and blurred stages as
// labeled PNG files into dir. The directory must exist.
func WithDebugDir(dir string) Option {
	return func(o *options) {
		o.debugDir = dir
	}
}

// WithMask replaces the procedural phosphor mask with img, resized to the
// output size. The mask is only applied when Params.MaskAmount > 0.
func WithMask(img stdimage.Image) Option {
	return func(o *options) {
		o.mask = img
	}
}

// WithLogger sets a logger for this Renderer only. Without it the
// package-wide logger from SetLogger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
