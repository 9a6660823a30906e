// Package validate contains helpers for validation of numeric parameters.
package validate

import "math"

const floatingPointTolerance = 0.000001

// InRange checks if value is in closed interval [start, end].
func InRange(start float64, end float64, value float64) bool {
	return value >= start && value <= end
}

// InRange2PI ...
func InRange2PI(value float64) bool {
	return value >= 0 && value <= math.Pi*2+floatingPointTolerance
}

// NonNegative ...
func NonNegative(value float64) bool {
	return value >= 0 && !math.IsNaN(value)
}

// NonNegativeAll checks every value of list with NonNegative.
func NonNegativeAll(values []float64) bool {
	for _, v := range values {
		if !NonNegative(v) {
			return false
		}
	}
	return true
}

// Positive ...
func Positive(value float64) bool {
	return value > 0 && !math.IsInf(value, 1)
}

// AlmostEqual compares floats with fixed tolerance.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatingPointTolerance
}
