package spill

import "errors"

var (
	// ErrInvalidOil indicates oil properties with negative or non-finite
	// numeric fields. Zero-valued fields are not invalid; they take the
	// documented defaults.
	ErrInvalidOil = errors.New("spill: invalid oil properties")

	// ErrInvalidSpill indicates spill parameters outside their physical
	// ranges (non-positive volume or elapsed time, negative wind or wave
	// height, non-finite values).
	ErrInvalidSpill = errors.New("spill: invalid spill parameters")
)
