package output

import "errors"

var (
	// ErrUnsupportedFormat is returned when an output format other than json or pretty is requested
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrPromptAborted is returned when a replacement file name could not be read after a write failure
	ErrPromptAborted = errors.New("prompt for replacement output file aborted")
	// ErrNilResult is returned when a nil scan result is rendered
	ErrNilResult = errors.New("scan result is nil")
)
