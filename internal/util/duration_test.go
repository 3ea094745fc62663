package util

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationValue(t *testing.T) {
	var d time.Duration
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(NewDurationValue(2*time.Second, &d), "interval", "")

	assert.Equal(t, 2*time.Second, d)
	assert.Equal(t, "2s", fs.Lookup("interval").DefValue)

	require.NoError(t, fs.Parse([]string{"--interval", "1.5 min"}))
	assert.Equal(t, 90*time.Second, d)
	assert.Equal(t, "2m", fs.Lookup("interval").Value.String())
}

func TestDurationValueRejects(t *testing.T) {
	var d time.Duration
	v := NewDurationValue(time.Second, &d)

	for _, s := range []string{"-1s", "1h30m", "soon", ""} {
		assert.Error(t, v.Set(s), "input %q", s)
	}
	assert.Equal(t, time.Second, d)
}
