package msconv

import (
	"fmt"
	"math"
)

// MaxInputLength is the longest input ParseDuration will scan, in bytes.
const MaxInputLength = 100

// ParseDuration converts a human-readable duration such as "1d", "2.5 hrs" or
// "-100" into a signed number of milliseconds.
//
// The input is a number (optional sign, digits, optional fraction) followed
// by an optional unit suffix; whitespace around the suffix is ignored. A
// missing suffix means milliseconds. The number is multiplied by the unit
// and rounded once, half away from zero.
func ParseDuration(input string) (int64, error) {
	if len(input) > MaxInputLength {
		return 0, fmt.Errorf("%w: %d bytes, limit is %d", ErrInputTooLong, len(input), MaxInputLength)
	}

	value, suffix := splitValue(input)
	v, ok := parseValue(value)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, input)
	}
	unit, err := LookupUnit(suffix)
	if err != nil {
		return 0, err
	}

	ms, ok := roundToInt64(v * float64(unit.Milliseconds()))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, input)
	}
	return ms, nil
}

// MustParseDuration is like ParseDuration but panics on error. It is meant
// for package-level values built from literals.
func MustParseDuration(input string) int64 {
	ms, err := ParseDuration(input)
	if err != nil {
		panic(fmt.Sprintf("msconv: MustParseDuration(%q): %v", input, err))
	}
	return ms
}

// roundToInt64 rounds f half away from zero and reports whether the result
// fits in an int64.
func roundToInt64(f float64) (int64, bool) {
	r := math.Round(f)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if math.IsNaN(r) || r >= -math.MinInt64 || r < math.MinInt64 {
		return 0, false
	}
	return int64(r), true
}
