package coin

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidCount = errors.New("invalid flip count")
)
