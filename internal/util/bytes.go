package util

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ParseByteSize parses a human-readable size such as "64MiB" or "512MB".
// An empty string means no limit and returns 0.
func ParseByteSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("byte size %q is too large", s)
	}
	return int64(n), nil
}

// HumanReadableBytes renders n with binary prefixes, e.g. "1.5 MiB".
func HumanReadableBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
