package utils

import (
	"math"
	"strconv"
)

// ClampPercent limits a percentage to the [0, 100] range.
func ClampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ClampAmount floors a monetary amount at zero.
func ClampAmount(a float64) float64 {
	if a < 0 {
		return 0
	}
	return a
}

// ClampCeiling limits an amount to [0, ceiling]. A fee carved out of a base
// amount must never exceed that base, regardless of how the policy that
// produced it was configured.
func ClampCeiling(a, ceiling float64) float64 {
	ceiling = ClampAmount(ceiling)
	a = ClampAmount(a)
	if a > ceiling {
		return ceiling
	}
	return a
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(a float64) float64 {
	return math.Round(a*100) / 100
}

// ParseFloat converts a string to a float64, returning 0 for an empty string
func ParseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return value, nil
}
