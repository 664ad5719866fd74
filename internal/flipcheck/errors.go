package flipcheck

import "errors"

// Sentinel kinds for verification failures.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidLabel     = errors.New("invalid coin label")
	ErrBatchLength      = errors.New("batch length mismatch")
	ErrImbalanced       = errors.New("flip distribution out of tolerance")
	ErrRootPage         = errors.New("root page missing documentation links")
)
