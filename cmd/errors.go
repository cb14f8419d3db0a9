package cmd

import "errors"

var (
	// ErrInvalidScanID is returned when the get argument is not a UUID
	ErrInvalidScanID = errors.New("scan id must be a UUID")
)
