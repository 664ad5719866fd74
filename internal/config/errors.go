package config

import "errors"

// Sentinel error kinds returned (wrapped) by Load and Validate.
var (
	// ErrInvalidConfig marks a value that parsed but violates a constraint.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file, env, or decode failure.
	ErrLoadConfig = errors.New("load config failed")
)
