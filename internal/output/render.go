package output

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

// consoleDestinationNote is the status line printed after rendering to the console
const consoleDestinationNote = "Scan result was written to the console."

// renderer holds what every variant's render function closes over
type renderer struct {
	console  *console.Console
	prompter Prompter
	fs       afero.Fs
	indent   int
}

// jsonConsole writes the canonical JSON of result to the console
func (r *renderer) jsonConsole(result *types.ScanResult) error {
	data, err := encodeJSON(result, r.indent)
	if err != nil {
		return err
	}

	if _, err := r.console.Out().Write(data); err != nil {
		return fmt.Errorf("writing scan result to console: %w", err)
	}

	r.console.Notef(consoleDestinationNote)

	return nil
}

// prettyConsole writes the styled layout of result to the console
func (r *renderer) prettyConsole(result *types.ScanResult) error {
	var buf bytes.Buffer

	writePretty(&buf, result, r.console.Paint)

	if _, err := buf.WriteTo(r.console.Out()); err != nil {
		return fmt.Errorf("writing scan result to console: %w", err)
	}

	r.warnIfRunning(result)
	r.console.Notef(consoleDestinationNote)

	return nil
}

// jsonFile writes the canonical JSON of result to path, falling back to the console on request
func (r *renderer) jsonFile(result *types.ScanResult, path string) error {
	data, err := encodeJSON(result, r.indent)
	if err != nil {
		return err
	}

	written, outcome, err := r.writeWithRetry(path, data)
	if err != nil {
		return err
	}

	if outcome == outcomeFallback {
		return r.jsonConsole(result)
	}

	r.console.Printf("Scan result was written to %s.", written)

	return nil
}

// prettyFile writes the plain text layout of result to path, falling back to the console on request
func (r *renderer) prettyFile(result *types.ScanResult, path string) error {
	var buf bytes.Buffer

	writePretty(&buf, result, console.Plain)

	written, outcome, err := r.writeWithRetry(path, buf.Bytes())
	if err != nil {
		return err
	}

	if outcome == outcomeFallback {
		return r.prettyConsole(result)
	}

	r.warnIfRunning(result)
	r.console.Printf("Scan result was written to %s.", written)

	return nil
}

// warnIfRunning tells the user to fetch the result again when the scan has not finished
func (r *renderer) warnIfRunning(result *types.ScanResult) {
	if !result.IsRunning() {
		return
	}

	log.Debug().Str("scan_id", result.ID.String()).Int("progress", result.ScanInfo.Progress).Msg("rendered a running scan")

	r.console.Warnf("The scan is still running (%d%%). Run `vulnissimo get %s` again later to see the complete result.",
		result.ScanInfo.Progress, result.ID)
}
