package console

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// progressMax is the value of a completed progress display
const progressMax = 100

// Progress displays the completion percentage of a running scan on the error stream.
// A terminal error stream gets an animated bar, anything else one line per change.
type Progress struct {
	console     *Console
	bar         *progressbar.ProgressBar
	description string
	last        int
}

// NewProgress creates a progress display labelled with description
func (c *Console) NewProgress(description string) *Progress {
	p := &Progress{
		console:     c,
		description: description,
		last:        -1,
	}

	if c.errInteractive() {
		p.bar = progressbar.NewOptions(progressMax,
			progressbar.OptionSetWriter(c.err),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(c.err)
			}),
		)
	}

	return p
}

// Set moves the display to percent
func (p *Progress) Set(percent int) error {
	if percent == p.last {
		return nil
	}

	p.last = percent

	if p.bar != nil {
		return p.bar.Set(percent)
	}

	fmt.Fprintf(p.console.err, "%s %d%%\n", p.description, percent)

	return nil
}

// Finish completes the display
func (p *Progress) Finish() error {
	if p.bar != nil {
		return p.bar.Finish()
	}

	return p.Set(progressMax)
}
