package msconv

import "errors"

// Errors returned by the parser, the formatter and the time.Duration
// helpers. Returned errors wrap one of these together with the offending
// input, so test for them with errors.Is.
var (
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidPostfix   = errors.New("invalid postfix")
	ErrInputTooLong     = errors.New("input too long")
	ErrNegativeDuration = errors.New("negative duration is not supported")
	ErrOutOfRange       = errors.New("duration out of range")
)

// IsInputError reports whether err was caused by the caller's input rather
// than by the environment. Input errors are deterministic; retrying the same
// call cannot succeed.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidPostfix) ||
		errors.Is(err, ErrInputTooLong) ||
		errors.Is(err, ErrNegativeDuration) ||
		errors.Is(err, ErrOutOfRange)
}
