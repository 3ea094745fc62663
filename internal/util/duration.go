package util

import (
	"time"

	"github.com/lucrnz/msconv"
)

// DurationValue is a pflag.Value that accepts msconv duration strings
// ("500ms", "2 min", "1.5h") for time.Duration flags.
type DurationValue struct {
	d *time.Duration
}

// NewDurationValue stores def in p and returns a flag value writing to p.
func NewDurationValue(def time.Duration, p *time.Duration) *DurationValue {
	*p = def
	return &DurationValue{d: p}
}

func (v *DurationValue) Set(s string) error {
	d, err := msconv.ParseStdDuration(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *DurationValue) String() string {
	if v.d == nil {
		return "0ms"
	}
	s, err := msconv.FormatDurationAuto(v.d.Milliseconds())
	if err != nil {
		return v.d.String()
	}
	return s
}

func (v *DurationValue) Type() string { return "duration" }
