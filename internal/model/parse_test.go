package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1", 1, true},
		{"3.00", 3, true},
		{"3,00", 3, true},
		{"4,79", 4.79, true},
		{" 5.5 ", 5.5, true},
		{".5", 0.5, true},
		{"-2,5", -2.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"1.234,56", 0, false},
		{"1,2,3", 0, false},
		{"1e3", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"+1", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"0x10", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidNumber, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.InDelta(t, tc.want, got, 1e-12, "input %q", tc.in)
	}
}

func TestParsePositive(t *testing.T) {
	v, err := ParsePositive("0,01")
	require.NoError(t, err)
	assert.InDelta(t, 0.01, v, 1e-12)

	for _, in := range []string{"0", "0,0", "-1", "x"} {
		_, err := ParsePositive(in)
		assert.ErrorIs(t, err, ErrInvalidNumber, "input %q", in)
	}
}

func TestParseNonNegative(t *testing.T) {
	v, err := ParseNonNegative("0")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = ParseNonNegative("-0,5")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(" 50 ")
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	for _, in := range []string{"", "-1", "+1", "50.5", "50,0", "fifty"} {
		_, err := ParseCount(in)
		assert.ErrorIs(t, err, ErrInvalidNumber, "input %q", in)
	}
}
