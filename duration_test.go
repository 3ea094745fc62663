package msconv

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDuration(t *testing.T) {
	d, err := ToDuration(1500)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, err = ToDuration(0)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = ToDuration(-1)
	assert.ErrorIs(t, err, ErrNegativeDuration)

	_, err = ToDuration(math.MaxInt64)
	assert.ErrorIs(t, err, ErrOutOfRange)

	maxMs := int64(math.MaxInt64 / int64(time.Millisecond))
	d, err = ToDuration(maxMs)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(maxMs)*time.Millisecond, d)
}

func TestParseStdDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"2.5 hrs", 2*time.Hour + 30*time.Minute},
		{"1d", 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"250", 250 * time.Millisecond},
		{"-0", 0},
	}

	for _, tt := range tests {
		got, err := ParseStdDuration(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestParseStdDurationErrors(t *testing.T) {
	_, err := ParseStdDuration("-1s")
	assert.ErrorIs(t, err, ErrNegativeDuration)
	assert.Contains(t, err.Error(), `"-1s"`)

	_, err = ParseStdDuration("1000 years")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = ParseStdDuration("1 xs")
	assert.ErrorIs(t, err, ErrInvalidPostfix)
}

func TestIsInputError(t *testing.T) {
	assert.False(t, IsInputError(nil))
	assert.False(t, IsInputError(assert.AnError))

	_, err := ParseStdDuration("-5m")
	assert.True(t, IsInputError(err))
}
