package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrEmptyCatalog      = errors.New("catalog has no items")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrDuplicateItem     = errors.New("duplicate catalog item")
	ErrInvalidThresholds = errors.New("invalid thresholds")
)
