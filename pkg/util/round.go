package util

import (
	"math"
	"strconv"
)

// epsilon compensates for binary float drift before scaling, so values such
// as 1.005 round up to 1.01 instead of truncating to 1.00.
const epsilon = 1e-9

// Round2 rounds a monetary value half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round((v+epsilon)*100) / 100
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
