package metocean

import "errors"

// ErrBadCoordinates is returned by At for positions outside the valid
// latitude/longitude ranges.
var ErrBadCoordinates = errors.New("metocean: coordinates out of range")
