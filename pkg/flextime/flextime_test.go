package flextime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 0},
		{"90", 90},
		{" 42 ", 42},
		{"1:30", 90},
		{"0:05", 5},
		{"10:00", 600},
		{"01:02:03", 3723},
		{"1:0:0", 3600},
		{"1 : 30", 90},
	}
	for _, tt := range tests {
		got, err := ParseSeconds(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseSecondsRejectsBadInput(t *testing.T) {
	_, err := ParseSeconds("")
	assert.ErrorIs(t, err, ErrRequired)
	_, err = ParseSeconds("   ")
	assert.ErrorIs(t, err, ErrRequired)

	for _, input := range []string{"abc", "-5", "1.5", "1:2:3:4", "1:xx", "::", "1:"} {
		_, err := ParseSeconds(input)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", input)
	}
}

func TestParseNumber(t *testing.T) {
	got, err := ParseNumber(90)
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	got, err = ParseNumber(12.9)
	require.NoError(t, err)
	assert.Equal(t, 12, got, "fractional seconds truncate down")

	for _, value := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ParseNumber(value)
		assert.ErrorIs(t, err, ErrInvalidTime, "value %v", value)
	}
}
