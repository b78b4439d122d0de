package report

import "errors"

// ErrUnknownFormat is returned for an output format other than text, csv, or json.
var ErrUnknownFormat = errors.New("unknown output format")
