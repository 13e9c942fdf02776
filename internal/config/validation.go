package config

import (
	"fmt"

	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/iwvelando/deposit-forecast/pkg/mathutil"
	"github.com/iwvelando/deposit-forecast/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors are reported later by ToInput.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	scenarios := c.EffectiveScenarios()
	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be projected")
	}

	seen := make(map[string]bool)
	for _, scenario := range scenarios {
		resolved := scenario.Resolve(c.Common)
		scope := fmt.Sprintf("Scenario '%s'", resolved.Name)

		if seen[resolved.Name] {
			warnings = append(warnings, fmt.Sprintf("%s is defined more than once", scope))
		}
		seen[resolved.Name] = true

		if !scenario.Active {
			continue
		}

		if resolved.Years < constants.MinYears || resolved.Years > constants.MaxYears {
			// ToInput rejects it; nothing else is meaningful.
			continue
		}

		rates := scenario.Rates
		if len(rates) == 0 {
			rates = c.Common.Rates
		}
		warnings = append(warnings, validation.PerYearWarnings(scope, "rates", resolved.Years, len(rates))...)

		if resolved.InflationEnabled {
			inflations := scenario.Inflations
			if len(inflations) == 0 {
				inflations = c.Common.Inflations
			}
			warnings = append(warnings, validation.PerYearWarnings(scope, "inflations", resolved.Years, len(inflations))...)
		}

		if mathutil.IsZero(resolved.InitialAmount) && mathutil.IsZero(resolved.MonthlyDeposit) {
			warnings = append(warnings, fmt.Sprintf("%s has neither an initial amount nor a monthly deposit", scope))
		}
	}

	return warnings
}
