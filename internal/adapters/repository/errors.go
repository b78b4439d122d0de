package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNotLoaded        = errors.New("dataset not loaded")
	ErrMissingIdentifier = errors.New("identifier column missing")
	ErrNoSource         = errors.New("no dataset source configured")
)
