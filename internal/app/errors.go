package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrEmptyQuery = errors.New("empty lookup query")
	ErrNoDataset  = errors.New("no dataset store configured")
)
