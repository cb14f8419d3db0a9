package console

import "errors"

var (
	// ErrNoInput is returned when a prompt cannot read an answer from the input stream
	ErrNoInput = errors.New("no input available for prompt")
)
