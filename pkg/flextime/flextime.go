// Package flextime parses the human-friendly time inputs viewers type:
// plain seconds, "mm:ss" or "hh:mm:ss".
package flextime

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrRequired      = errors.New("time is required")
	ErrInvalidFormat = errors.New("invalid time format")
	ErrInvalidTime   = errors.New("invalid time")
)

func ParseSeconds(input string) (int, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return 0, ErrRequired
	}

	if isDigits(raw) {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return 0, ErrInvalidFormat
		}
		return seconds, nil
	}

	parts := strings.Split(raw, ":")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if !isDigits(parts[i]) {
			return 0, ErrInvalidFormat
		}
	}

	switch len(parts) {
	case 2:
		mm, _ := strconv.Atoi(parts[0])
		ss, _ := strconv.Atoi(parts[1])
		return mm*60 + ss, nil
	case 3:
		hh, _ := strconv.Atoi(parts[0])
		mm, _ := strconv.Atoi(parts[1])
		ss, _ := strconv.Atoi(parts[2])
		return hh*3600 + mm*60 + ss, nil
	}

	return 0, ErrInvalidFormat
}

// ParseNumber accepts a numeric time value, truncating fractional seconds.
func ParseNumber(value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, ErrInvalidTime
	}

	return int(math.Floor(value)), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
