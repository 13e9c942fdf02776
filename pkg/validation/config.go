// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/deposit-forecast/pkg/constants"
)

// ValidateYears checks that the horizon is within the supported range.
func ValidateYears(years int) error {
	if years < constants.MinYears || years > constants.MaxYears {
		return fmt.Errorf("years must be between %d and %d, got %d",
			constants.MinYears, constants.MaxYears, years)
	}
	return nil
}

// ValidateAmount checks that a currency amount is finite and not negative.
func ValidateAmount(field string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%s must be a finite number", field)
	}
	if amount < 0 {
		return fmt.Errorf("%s cannot be negative, got %.2f", field, amount)
	}
	return nil
}

// ValidatePercent checks that a percentage lies within [0, 100].
func ValidatePercent(field string, percent float64) error {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return fmt.Errorf("%s must be a finite number", field)
	}
	if percent < 0 || percent > constants.MaxPercent {
		return fmt.Errorf("%s must be between 0 and %.0f percent, got %g",
			field, constants.MaxPercent, percent)
	}
	return nil
}

// ValidatePercentList checks every entry of a per-year percentage list and
// reports the first offending year.
func ValidatePercentList(field string, percents []float64) error {
	for i, percent := range percents {
		if err := ValidatePercent(fmt.Sprintf("%s for year %d", field, i+1), percent); err != nil {
			return err
		}
	}
	return nil
}

// PerYearWarnings reports per-year lists that are shorter or longer than the horizon.
func PerYearWarnings(scope, field string, years, provided int) []string {
	var warnings []string
	switch {
	case provided > years:
		warnings = append(warnings, fmt.Sprintf("%s: %d %s given for %d years, extra entries are ignored",
			scope, provided, field, years))
	case provided < years:
		warnings = append(warnings, fmt.Sprintf("%s: %d %s given for %d years, missing years use defaults",
			scope, provided, field, years))
	}
	return warnings
}
