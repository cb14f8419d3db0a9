package target

import "errors"

var (
	// ErrEmptyTarget is returned when no scan target is provided
	ErrEmptyTarget = errors.New("scan target must not be empty")
	// ErrInvalidURL is returned when the URL format is not valid
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrUnsupportedScheme is returned when a target URL uses a scheme other than http or https
	ErrUnsupportedScheme = errors.New("unsupported URL scheme, expected http or https")
	// ErrInvalidTarget is returned when the target is neither an IP address nor a public domain name
	ErrInvalidTarget = errors.New("invalid scan target")
)
