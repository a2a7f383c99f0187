package helpers

import "math"

// RoundHalfUp rounds v to two decimal places using half-up rounding
func RoundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Percentage computes part/total as a percentage rounded to two decimals.
// A zero total yields 0, never NaN.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return RoundHalfUp(float64(part) / float64(total) * 100)
}

// Ratio computes part/total rounded to two decimals, 0 on zero total
func Ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return RoundHalfUp(float64(part) / float64(total))
}
