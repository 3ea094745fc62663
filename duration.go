package msconv

import (
	"fmt"
	"math"
	"time"
)

// ToDuration converts a millisecond count into a time.Duration. Negative
// counts are rejected with ErrNegativeDuration.
func ToDuration(ms int64) (time.Duration, error) {
	if ms < 0 {
		return 0, fmt.Errorf("%w: %dms", ErrNegativeDuration, ms)
	}
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return 0, fmt.Errorf("%w: %dms does not fit in time.Duration", ErrOutOfRange, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// ParseStdDuration parses input like ParseDuration and converts the result
// with ToDuration.
func ParseStdDuration(input string) (time.Duration, error) {
	ms, err := ParseDuration(input)
	if err != nil {
		return 0, err
	}
	d, err := ToDuration(ms)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", input, err)
	}
	return d, nil
}
