// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/deposit-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// WithinRelativeTolerance checks if two values differ by at most tolerance
// relative to the larger magnitude.
func WithinRelativeTolerance(val1, val2, tolerance float64) bool {
	scale := math.Max(math.Abs(val1), math.Abs(val2))
	if scale == 0 {
		return true
	}
	return math.Abs(val1-val2)/scale <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PercentToFraction converts a percentage (e.g. 12) into a fraction (0.12).
func PercentToFraction(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// FractionToPercent converts a fraction (e.g. 0.12) into a percentage (12).
func FractionToPercent(fraction float64) float64 {
	return fraction * constants.PercentageMultiplier
}
