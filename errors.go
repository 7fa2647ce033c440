package crt

import "errors"

// Pipeline errors. Errors returned by this package wrap one of these and can
// be matched with errors.Is.
var (
	// ErrInvalidImageShape is returned when an input or mask image is
	// missing or has no pixels.
	ErrInvalidImageShape = errors.New("crt: invalid image shape")

	// ErrInvalidParameters is returned when Params fail validation.
	ErrInvalidParameters = errors.New("crt: invalid parameters")
)
