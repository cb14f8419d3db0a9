package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Style is a semantic styling tag applied to console text
type Style string

const (
	// StyleNone leaves text unstyled
	StyleNone Style = ""
	// StyleBold renders text in bold
	StyleBold Style = "bold"
	// StyleDim renders text faint
	StyleDim Style = "dim"
	// StyleBoldRed renders text bold and red
	StyleBoldRed Style = "bold red"
	// StyleRed renders text red
	StyleRed Style = "red"
	// StyleYellow renders text yellow
	StyleYellow Style = "yellow"
	// StyleBlue renders text blue
	StyleBlue Style = "blue"
	// StyleGreen renders text green
	StyleGreen Style = "green"
	// StyleCyan renders text cyan
	StyleCyan Style = "cyan"
)

// styleAttributes maps each style to its terminal attributes
var styleAttributes = map[Style][]color.Attribute{
	StyleBold:    {color.Bold},
	StyleDim:     {color.Faint},
	StyleBoldRed: {color.Bold, color.FgRed},
	StyleRed:     {color.FgRed},
	StyleYellow:  {color.FgYellow},
	StyleBlue:    {color.FgBlue},
	StyleGreen:   {color.FgGreen},
	StyleCyan:    {color.FgCyan},
}

// Console is the rendering sink for one command invocation. Results and
// status lines go to the output stream, errors and notices to the error stream.
type Console struct {
	out    io.Writer
	err    io.Writer
	in     *bufio.Reader
	styled *bool
	// plain disables styling on both streams
	plain bool
}

// Option configures the Console
type Option func(*Console)

// WithOutput sets the stream results are written to
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// WithErrorOutput sets the stream errors and notices are written to
func WithErrorOutput(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.err = w
		}
	}
}

// WithInput sets the stream prompt answers are read from
func WithInput(r io.Reader) Option {
	return func(c *Console) {
		if r != nil {
			c.in = bufio.NewReader(r)
		}
	}
}

// WithStyle forces styled output on or off instead of detecting a terminal
func WithStyle(styled bool) Option {
	return func(c *Console) {
		c.styled = &styled
		c.plain = !styled
	}
}

// New creates a Console bound to the process standard streams unless overridden
func New(opts ...Option) *Console {
	c := &Console{
		out: os.Stdout,
		err: os.Stderr,
		in:  bufio.NewReader(os.Stdin),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.styled == nil {
		styled := isTerminal(c.out)
		c.styled = &styled
	}

	return c
}

// isTerminal reports whether w is an interactive terminal that accepts color
func isTerminal(w io.Writer) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Out returns the result stream
func (c *Console) Out() io.Writer {
	return c.out
}

// Styled reports whether text written by this console carries terminal styling
func (c *Console) Styled() bool {
	return *c.styled
}

// Paint applies style to text when the console is styled
func (c *Console) Paint(text string, style Style) string {
	if !c.Styled() {
		return text
	}

	return Paint(text, style)
}

// Paint applies style to text unconditionally
func Paint(text string, style Style) string {
	attrs, ok := styleAttributes[style]
	if !ok || text == "" {
		return text
	}

	col := color.New(attrs...)
	col.EnableColor()

	return col.Sprint(text)
}

// Plain returns text unchanged; it is the painter used for plain-text destinations
func Plain(text string, _ Style) string {
	return text
}

// Printf writes a formatted line to the output stream
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Warnf writes a highlighted warning line to the output stream
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintln(c.out, c.Paint(fmt.Sprintf(format, args...), StyleYellow))
}

// Infof writes a highlighted informational line to the error stream
func (c *Console) Infof(format string, args ...any) {
	fmt.Fprintln(c.err, c.paintErr(fmt.Sprintf(format, args...), StyleCyan))
}

// Errorf writes an error line to the error stream
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.err, c.paintErr(fmt.Sprintf(format, args...), StyleRed))
}

// Notef writes a status line to the error stream, keeping the output stream machine readable
func (c *Console) Notef(format string, args ...any) {
	fmt.Fprintln(c.err, c.paintErr(fmt.Sprintf(format, args...), StyleDim))
}

// errInteractive reports whether the error stream is a terminal that may be styled
func (c *Console) errInteractive() bool {
	return !c.plain && isTerminal(c.err)
}

// paintErr styles text destined for the error stream
func (c *Console) paintErr(text string, style Style) string {
	if !c.errInteractive() {
		return text
	}

	return Paint(text, style)
}

// Ask writes prompt to the error stream and reads one line of input.
// An answer is returned even when the input ends without a trailing newline.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.err, c.paintErr(prompt, StyleBold)+": ")

	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: %v", ErrNoInput, err)
	}

	return strings.TrimSpace(line), nil
}
