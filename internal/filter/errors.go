package filter

import "errors"

// ErrInvalidParameters is returned when a filter is constructed with
// parameters outside its domain.
var ErrInvalidParameters = errors.New("filter: invalid parameters")
