package oildb

import "errors"

// ErrUnknownOilType is returned by Get for names absent from the database.
var ErrUnknownOilType = errors.New("oildb: unknown oil type")
