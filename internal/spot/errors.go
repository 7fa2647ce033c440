package spot

import "errors"

// ErrInvalidParameters is returned when a renderer or footprint is
// configured outside its domain.
var ErrInvalidParameters = errors.New("spot: invalid parameters")
