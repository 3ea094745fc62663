// Package msconv converts human-readable durations to milliseconds and back.
//
//	ms, _ := msconv.ParseDuration("2.5 hrs")   // 9000000
//	s, _ := msconv.FormatDurationAuto(ms)      // "3h"
//	l, _ := msconv.FormatDurationAutoLong(ms)  // "3 hours"
//
// A duration string is a decimal number with an optional sign and fraction,
// followed by an optional unit suffix. Exponents, special float values and
// combined forms such as "1d2h" are rejected. Weeks and years are fixed
// ratios (7 days and 365.25 days), not calendar arithmetic.
//
// All functions are pure and safe for concurrent use.
package msconv
