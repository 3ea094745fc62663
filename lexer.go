package msconv

import "math"

// maxFractionDigits bounds how many fractional digits contribute to the
// value. Further digits are still consumed but sit below float64 precision.
const maxFractionDigits = 18

// exactLimit is 2^53. Integers below it convert to float64 exactly.
const exactLimit = 1 << 53

// isValueByte reports whether c can be part of the numeric token.
func isValueByte(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// splitValue splits s at the first byte that cannot belong to the numeric
// token. The suffix is returned untrimmed.
func splitValue(s string) (value, suffix string) {
	i := 0
	for i < len(s) && isValueByte(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// digits accumulates a run of ASCII digits starting at b[i]. It returns the
// accumulated value, the number of digits consumed and the new cursor. Only
// the first limit digits are accumulated when limit > 0.
func digits(b string, i, limit int) (acc float64, n int, next int) {
	for i < len(b) {
		c := b[i]
		if c < '0' || c > '9' {
			break
		}
		if limit <= 0 || n < limit {
			acc = acc*10 + float64(c-'0')
		}
		n++
		i++
	}
	return acc, n, i
}

// parseValue parses [+-]digits[.digits]. The whole token must be consumed;
// at least one digit must appear on either side of the point.
func parseValue(b string) (float64, bool) {
	i := 0
	neg := false
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}

	start := i
	whole, nWhole, i := digits(b, i, 0)
	wholeDigits := b[start:i]

	var frac float64
	var nFrac, used int
	var fracDigits string
	if i < len(b) && b[i] == '.' {
		i++
		start = i
		frac, nFrac, i = digits(b, i, maxFractionDigits)
		used = min(nFrac, maxFractionDigits)
		fracDigits = b[start : start+used]
	}

	if i != len(b) || nWhole+nFrac == 0 {
		return 0, false
	}

	v := whole
	if used > 0 {
		// A single division of two exact operands is correctly rounded.
		if m, ok := mantissa(wholeDigits, fracDigits); ok {
			v = float64(m) / math.Pow10(used)
		} else {
			v += frac / math.Pow10(used)
		}
	}
	if neg {
		v = -v
	}
	return v, true
}

// mantissa joins the whole and fractional digit runs into one integer. It
// fails once the result reaches exactLimit.
func mantissa(whole, frac string) (uint64, bool) {
	var m uint64
	for _, run := range [...]string{whole, frac} {
		for i := 0; i < len(run); i++ {
			m = m*10 + uint64(run[i]-'0')
			if m >= exactLimit {
				return 0, false
			}
		}
	}
	return m, true
}
