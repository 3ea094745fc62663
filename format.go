package msconv

import (
	"math"
	"strconv"
)

// autoUnits are the tiers FormatDurationAuto and FormatDurationAutoLong pick
// from, largest first. Week and Year are never chosen automatically.
var autoUnits = [...]Unit{Day, Hour, Minute, Second}

// pluralThreshold is the multiple of a unit from which the long form uses
// the plural spelling ("1 day", "2 days").
const pluralThreshold = 1.5

// FormatDuration renders ms in the unit named by suffix, rounded to the
// nearest whole unit. The suffix is resolved like a ParseDuration suffix but
// appended exactly as given, so " day" yields "2 day" and "d" yields "2d".
func FormatDuration(ms int64, suffix string) (string, error) {
	unit, err := LookupUnit(suffix)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(inUnit(ms, unit), 10) + suffix, nil
}

// FormatDurationAuto renders ms in the largest of day, hour, minute and
// second that fits, or in milliseconds below one second: "14d", "-3h",
// "500ms".
func FormatDurationAuto(ms int64) (string, error) {
	return FormatDuration(ms, autoUnit(ms).Short())
}

// FormatDurationAutoLong is FormatDurationAuto with spelled-out units:
// "1 day", "7 days", "90 minutes". The plural is used from 1.5 units up.
func FormatDurationAutoLong(ms int64) (string, error) {
	unit := autoUnit(ms)
	plural := math.Abs(float64(ms)) >= pluralThreshold*float64(unit.Milliseconds())
	return FormatDuration(ms, " "+unit.Long(plural))
}

func autoUnit(ms int64) Unit {
	abs := math.Abs(float64(ms))
	for _, u := range autoUnits {
		if abs >= float64(u.Milliseconds()) {
			return u
		}
	}
	return Millisecond
}

// inUnit returns ms expressed in whole units of u, rounded half away from
// zero. It cannot overflow: every unit but Millisecond shrinks the value.
func inUnit(ms int64, u Unit) int64 {
	if u == Millisecond {
		return ms
	}
	n, _ := roundToInt64(float64(ms) / float64(u.Milliseconds()))
	return n
}
