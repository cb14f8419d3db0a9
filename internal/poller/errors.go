package poller

import "errors"

var (
	// ErrMissingFetcher is returned when a poller is created without a scan fetcher
	ErrMissingFetcher = errors.New("scan fetcher is required")
)
