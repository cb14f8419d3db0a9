package output

import (
	"fmt"
	"strings"
)

// Format selects how a scan result is serialized
type Format string

const (
	// FormatJSON renders the canonical JSON representation
	FormatJSON Format = "json"
	// FormatPretty renders a human oriented layout
	FormatPretty Format = "pretty"
)

// Formats lists the supported formats in flag help order
var Formats = []Format{FormatJSON, FormatPretty}

// ParseFormat validates a format name supplied by the user
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))

	switch format {
	case FormatJSON, FormatPretty:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json or pretty)", ErrUnsupportedFormat, value)
	}
}

// String returns the format name
func (f Format) String() string {
	return string(f)
}
