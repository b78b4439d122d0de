package survey

import "errors"

// ErrUnknownColumn is returned when a requested column is not in the header.
var ErrUnknownColumn = errors.New("unknown survey column")
