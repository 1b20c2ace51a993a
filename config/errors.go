package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrUnknownFormat indicates a file extension with no known decoder.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrNotFound indicates that no config file was found.
	ErrNotFound = errors.New("config file not found")

	// ErrInvalid indicates a config value that cannot be converted to
	// generation settings.
	ErrInvalid = errors.New("invalid config")
)
