package config

import "errors"

var (
	// ErrConfigUnmarshal is returned when config unmarshalling fails
	ErrConfigUnmarshal = errors.New("failed to unmarshal configuration")
	// ErrConfigLoad is returned when a configuration source cannot be read or parsed
	ErrConfigLoad = errors.New("failed to load configuration")
	// ErrConfigFileNotFound is returned when an explicitly named configuration file does not exist
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
