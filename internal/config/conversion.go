package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/iwvelando/deposit-forecast/pkg/finance"
	"github.com/iwvelando/deposit-forecast/pkg/mathutil"
	"github.com/iwvelando/deposit-forecast/pkg/validation"
)

// ResolvedScenario is a scenario merged over Common with every per-year
// list sized to the horizon. Rates and inflations are still percentages.
type ResolvedScenario struct {
	Name              string
	InitialAmount     float64
	MonthlyDeposit    float64
	Years             int
	RatePercents      []float64
	InflationEnabled  bool
	InflationPercents []float64
}

// DefaultRatePercent is the suggested nominal rate for a 1-based year: 16%
// in the first year, 3 points lower each following year, never below 7%.
func DefaultRatePercent(year int) float64 {
	return mathutil.Max(constants.DefaultRateFloor,
		constants.DefaultFirstYearRate-float64(year-1)*constants.DefaultRateStep)
}

// DefaultRatePercents returns the suggested rates for every year of the horizon.
func DefaultRatePercents(years int) []float64 {
	return fillPerYear(nil, years, DefaultRatePercent)
}

// DefaultInflationPercents returns the suggested inflation for every year of the horizon.
func DefaultInflationPercents(years int) []float64 {
	return fillPerYear(nil, years, func(int) float64 { return constants.DefaultInflation })
}

// fillPerYear sizes values to years entries, filling missing years from
// fallback and dropping extras.
func fillPerYear(values []float64, years int, fallback func(year int) float64) []float64 {
	if years < 0 {
		years = 0
	}
	filled := make([]float64, years)
	for i := range filled {
		if i < len(values) {
			filled[i] = values[i]
		} else {
			filled[i] = fallback(i + 1)
		}
	}
	return filled
}

// Resolve merges the scenario over common and fills per-year defaults.
// Disabled inflation yields all-zero inflations.
func (s Scenario) Resolve(common Common) ResolvedScenario {
	resolved := ResolvedScenario{
		Name:             strings.TrimSpace(s.Name),
		InitialAmount:    common.InitialAmount,
		MonthlyDeposit:   common.MonthlyDeposit,
		Years:            common.Years,
		InflationEnabled: common.InflationEnabled,
	}
	if resolved.Name == "" {
		resolved.Name = DefaultScenarioName
	}
	if s.InitialAmount != nil {
		resolved.InitialAmount = *s.InitialAmount
	}
	if s.MonthlyDeposit != nil {
		resolved.MonthlyDeposit = *s.MonthlyDeposit
	}
	if resolved.Years == 0 {
		resolved.Years = constants.DefaultYears
	}
	// An explicit scenario horizon is kept as given, zero included.
	if s.Years != nil {
		resolved.Years = *s.Years
	}
	if s.InflationEnabled != nil {
		resolved.InflationEnabled = *s.InflationEnabled
	}

	rates := s.Rates
	if len(rates) == 0 {
		rates = common.Rates
	}
	resolved.RatePercents = fillPerYear(rates, resolved.Years, DefaultRatePercent)

	if resolved.InflationEnabled {
		inflations := s.Inflations
		if len(inflations) == 0 {
			inflations = common.Inflations
		}
		resolved.InflationPercents = fillPerYear(inflations, resolved.Years,
			func(int) float64 { return constants.DefaultInflation })
	} else {
		resolved.InflationPercents = fillPerYear(nil, resolved.Years, func(int) float64 { return 0 })
	}

	return resolved
}

// Validate rejects values the projection cannot accept.
func (r ResolvedScenario) Validate() error {
	if err := validation.ValidateYears(r.Years); err != nil {
		return err
	}
	if err := validation.ValidateAmount("initialAmount", r.InitialAmount); err != nil {
		return err
	}
	if err := validation.ValidateAmount("monthlyDeposit", r.MonthlyDeposit); err != nil {
		return err
	}
	if err := validation.ValidatePercentList("rate", r.RatePercents); err != nil {
		return err
	}
	return validation.ValidatePercentList("inflation", r.InflationPercents)
}

// ToInput validates the resolved scenario and converts its percentages into
// the fractional rates the projection expects.
func (r ResolvedScenario) ToInput() (finance.ProjectionInput, error) {
	if err := r.Validate(); err != nil {
		return finance.ProjectionInput{}, fmt.Errorf("scenario %s: %w", r.Name, err)
	}

	return finance.ProjectionInput{
		InitialAmount:    r.InitialAmount,
		MonthlyDeposit:   r.MonthlyDeposit,
		Years:            r.Years,
		AnnualRates:      finance.NewYearlyRates(toFractions(r.RatePercents)...),
		AnnualInflations: finance.NewYearlyRates(toFractions(r.InflationPercents)...),
	}, nil
}

// ToInput resolves the scenario against common and converts it.
func (s Scenario) ToInput(common Common) (finance.ProjectionInput, error) {
	return s.Resolve(common).ToInput()
}

func toFractions(percents []float64) []float64 {
	fractions := make([]float64, len(percents))
	for i, percent := range percents {
		fractions[i] = mathutil.PercentToFraction(percent)
	}
	return fractions
}
