package scoring

import "errors"

// Sentinel errors for this package.
var (
	ErrInvalidPackPolicy = errors.New("invalid pack scoring policy")
)
