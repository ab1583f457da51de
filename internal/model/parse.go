package model

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when user input is not a usable number.
var ErrInvalidNumber = errors.New("invalid number")

// ParseDecimal parses a decimal number typed by a user. Both "12.34" and
// "12,34" are accepted; thousands separators, exponents and signs other than a
// single leading minus are rejected.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidNumber
	}
	s = strings.ReplaceAll(s, ",", ".")

	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, ErrInvalidNumber
	}
	seenDot, seenDigit := false, false
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return 0, ErrInvalidNumber
		}
	}
	if !seenDigit {
		return 0, ErrInvalidNumber
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParsePositive is ParseDecimal restricted to values greater than zero.
func ParsePositive(s string) (float64, error) {
	v, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParseNonNegative is ParseDecimal restricted to values of at least zero.
func ParseNonNegative(s string) (float64, error) {
	v, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParseCount parses a non-negative whole number such as a tank capacity.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidNumber
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
