// Package output renders scan results in a chosen format to the console or a file
package output

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

// Variant identifies one format × destination combination
type Variant int

const (
	// VariantJSONConsole writes JSON to the console
	VariantJSONConsole Variant = iota
	// VariantPrettyConsole writes the styled layout to the console
	VariantPrettyConsole
	// VariantJSONFile writes JSON to a file
	VariantJSONFile
	// VariantPrettyFile writes the plain text layout to a file
	VariantPrettyFile
)

// String returns a readable name for the variant
func (v Variant) String() string {
	switch v {
	case VariantJSONConsole:
		return "json-console"
	case VariantPrettyConsole:
		return "pretty-console"
	case VariantJSONFile:
		return "json-file"
	case VariantPrettyFile:
		return "pretty-file"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Prompter asks the user for a line of input
type Prompter interface {
	Ask(prompt string) (string, error)
}

// Outputter renders a scan result to one destination in one format
type Outputter struct {
	variant     Variant
	destination string
	render      func(*types.ScanResult) error
}

// Render writes result to the outputter's destination
func (o *Outputter) Render(result *types.ScanResult) error {
	if result == nil {
		return ErrNilResult
	}

	return o.render(result)
}

// Variant returns the format × destination combination of the outputter
func (o *Outputter) Variant() Variant {
	return o.variant
}

// Destination returns the output file path, or an empty string for the console
func (o *Outputter) Destination() string {
	return o.destination
}

// Option configures the renderer behind an Outputter
type Option func(*renderer)

// WithConsole sets the console results, status lines and prompts go through
func WithConsole(c *console.Console) Option {
	return func(r *renderer) {
		if c != nil {
			r.console = c
		}
	}
}

// WithPrompter overrides how a replacement file name is asked for after a permission failure
func WithPrompter(p Prompter) Option {
	return func(r *renderer) {
		if p != nil {
			r.prompter = p
		}
	}
}

// WithFs sets the filesystem file destinations are written to
func WithFs(fs afero.Fs) Option {
	return func(r *renderer) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// New selects the outputter for a destination and format. An empty outputFile
// means the console. indent only applies to the JSON format.
func New(outputFile string, format Format, indent int, opts ...Option) (*Outputter, error) {
	r := &renderer{
		indent: indent,
		fs:     afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.console == nil {
		r.console = console.New()
	}

	if r.prompter == nil {
		r.prompter = r.console
	}

	switch {
	case outputFile == "" && format == FormatJSON:
		return &Outputter{variant: VariantJSONConsole, render: r.jsonConsole}, nil
	case outputFile == "" && format == FormatPretty:
		return &Outputter{variant: VariantPrettyConsole, render: r.prettyConsole}, nil
	case format == FormatJSON:
		return &Outputter{
			variant:     VariantJSONFile,
			destination: outputFile,
			render: func(result *types.ScanResult) error {
				return r.jsonFile(result, outputFile)
			},
		}, nil
	case format == FormatPretty:
		return &Outputter{
			variant:     VariantPrettyFile,
			destination: outputFile,
			render: func(result *types.ScanResult) error {
				return r.prettyFile(result, outputFile)
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
