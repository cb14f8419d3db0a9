package output

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	// filePerm is the permission new output files are created with
	filePerm = 0o644
	// replacementPrompt asks for another destination after a permission failure
	replacementPrompt = "Enter another file name for writing (or leave empty to write the scan result to the console)"
)

// writeOutcome is how a file write with retry ended
type writeOutcome int

const (
	// outcomeWritten means the content reached a file
	outcomeWritten writeOutcome = iota
	// outcomeFallback means the user chose the console instead
	outcomeFallback
	// outcomeAborted means the write failed for good and an error is returned
	outcomeAborted
)

// writeWithRetry writes data to path. Permission failures are reported and the
// user is asked for another path until a write succeeds or the answer is empty.
// It returns the path that was finally written.
func (r *renderer) writeWithRetry(path string, data []byte) (string, writeOutcome, error) {
	for {
		err := r.writeFile(path, data)
		if err == nil {
			return path, outcomeWritten, nil
		}

		if !errors.Is(err, fs.ErrPermission) {
			return "", outcomeAborted, err
		}

		log.Warn().Err(err).Str("path", path).Msg("permission denied writing scan result")

		r.console.Errorf("Could not open file for writing: %s.", failureReason(err))

		answer, promptErr := r.prompter.Ask(replacementPrompt)
		if promptErr != nil {
			return "", outcomeAborted, errors.Join(ErrPromptAborted, promptErr)
		}

		if answer == "" {
			return "", outcomeFallback, nil
		}

		path = answer
	}
}

// writeFile opens path, writes data and closes the handle on every exit path
func (r *renderer) writeFile(path string, data []byte) error {
	f, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// failureReason returns the operating system's reason for a failed file operation
func failureReason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	return err.Error()
}
