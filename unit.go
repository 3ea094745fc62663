package msconv

import (
	"fmt"
	"strings"
)

// Unit is a fixed-ratio duration unit.
type Unit uint8

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Year
)

// Milliseconds per unit. Year is 365.25 days.
const (
	MsPerMillisecond int64 = 1
	MsPerSecond            = 1000 * MsPerMillisecond
	MsPerMinute            = 60 * MsPerSecond
	MsPerHour              = 60 * MsPerMinute
	MsPerDay               = 24 * MsPerHour
	MsPerWeek              = 7 * MsPerDay
	MsPerYear              = MsPerDay*365 + MsPerDay/4
)

type unitInfo struct {
	name     string
	ms       int64
	short    string
	singular string
	plural   string
	suffixes []string
}

var units = [...]unitInfo{
	Millisecond: {"millisecond", MsPerMillisecond, "ms", "ms", "ms", []string{"milliseconds", "millisecond", "msecs", "msec", "ms", ""}},
	Second:      {"second", MsPerSecond, "s", "second", "seconds", []string{"seconds", "second", "secs", "sec", "s"}},
	Minute:      {"minute", MsPerMinute, "m", "minute", "minutes", []string{"minutes", "minute", "mins", "min", "m"}},
	Hour:        {"hour", MsPerHour, "h", "hour", "hours", []string{"hours", "hour", "hrs", "hr", "h"}},
	Day:         {"day", MsPerDay, "d", "day", "days", []string{"days", "day", "d"}},
	Week:        {"week", MsPerWeek, "w", "week", "weeks", []string{"weeks", "week", "w"}},
	Year:        {"year", MsPerYear, "y", "year", "years", []string{"years", "year", "yrs", "yr", "y"}},
}

// suffixTable maps every accepted suffix to its unit. Built once at init, read-only afterwards.
var suffixTable = func() map[string]Unit {
	m := make(map[string]Unit, 40)
	for u := range units {
		for _, s := range units[u].suffixes {
			if prev, dup := m[s]; dup {
				panic(fmt.Sprintf("msconv: suffix %q registered for both %s and %s", s, prev, Unit(u)))
			}
			m[s] = Unit(u)
		}
	}
	return m
}()

// Units returns every unit in ascending order of size.
func Units() []Unit {
	out := make([]Unit, len(units))
	for i := range units {
		out[i] = Unit(i)
	}
	return out
}

// LookupUnit resolves a unit suffix. Leading and trailing whitespace is
// ignored; matching is otherwise exact and case-sensitive. The empty suffix
// is Millisecond.
func LookupUnit(suffix string) (Unit, error) {
	u, ok := suffixTable[strings.TrimSpace(suffix)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPostfix, suffix)
	}
	return u, nil
}

func (u Unit) valid() bool { return int(u) < len(units) }

// Milliseconds returns the number of milliseconds in one u.
func (u Unit) Milliseconds() int64 {
	if !u.valid() {
		return 0
	}
	return units[u].ms
}

func (u Unit) String() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
	return units[u].name
}

// Short returns the one or two letter suffix used by FormatDurationAuto.
func (u Unit) Short() string {
	if !u.valid() {
		return ""
	}
	return units[u].short
}

// Long returns the spelled-out suffix used by FormatDurationAutoLong, without
// the leading space. Millisecond stays "ms" in both forms.
func (u Unit) Long(plural bool) string {
	if !u.valid() {
		return ""
	}
	if plural {
		return units[u].plural
	}
	return units[u].singular
}

// Suffixes returns the suffixes accepted for u, longest spelling first.
func (u Unit) Suffixes() []string {
	if !u.valid() {
		return nil
	}
	return append([]string(nil), units[u].suffixes...)
}
