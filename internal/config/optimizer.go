package config

import (
	"fmt"
	"math"
	"strings"
)

const (
	GoalFieldMonthlyDeposit = "monthlyDeposit"
	GoalFieldInitialAmount  = "initialAmount"

	GoalMeasureNominal = "nominal"
	GoalMeasureReal    = "real"

	defaultGoalTolerance     = 0.01
	defaultGoalMaxIterations = 100
)

// GoalConfig asks the optimizer for the smallest value of one scenario field
// whose projection ends at or above Target.
type GoalConfig struct {
	Target        float64  `yaml:"target" json:"target" mapstructure:"target"`
	Field         string   `yaml:"field,omitempty" json:"field,omitempty" mapstructure:"field"`
	Measure       string   `yaml:"measure,omitempty" json:"measure,omitempty" mapstructure:"measure"`
	Min           *float64 `yaml:"min,omitempty" json:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" json:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" json:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalGoalField returns the canonical identifier for a goal field.
func CanonicalGoalField(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "monthlydeposit", "monthly_deposit", "monthly-deposit", "deposit":
		return GoalFieldMonthlyDeposit
	case "initialamount", "initial_amount", "initial-amount", "initial":
		return GoalFieldInitialAmount
	default:
		return strings.TrimSpace(value)
	}
}

// Normalize applies defaults and canonical names before validation.
func (g *GoalConfig) Normalize() {
	if g == nil {
		return
	}
	g.Field = CanonicalGoalField(g.Field)

	g.Measure = strings.ToLower(strings.TrimSpace(g.Measure))
	if g.Measure == "" {
		g.Measure = GoalMeasureNominal
	}
	if g.Tolerance <= 0 {
		g.Tolerance = defaultGoalTolerance
	}
	if g.MaxIterations <= 0 {
		g.MaxIterations = defaultGoalMaxIterations
	}
}

// Bounds returns the search interval. The default upper bound is the target
// itself, which reaches a nominal target for either field.
func (g *GoalConfig) Bounds() (float64, float64) {
	lower := 0.0
	if g.Min != nil {
		lower = *g.Min
	}
	upper := g.Target
	if g.Max != nil {
		upper = *g.Max
	}
	return lower, upper
}

// Validate returns an error when the goal cannot be searched.
func (g *GoalConfig) Validate() error {
	if g == nil {
		return fmt.Errorf("goal configuration cannot be nil")
	}

	g.Normalize()

	switch g.Field {
	case GoalFieldMonthlyDeposit, GoalFieldInitialAmount:
	default:
		return fmt.Errorf("goal field %q is not supported", g.Field)
	}
	switch g.Measure {
	case GoalMeasureNominal, GoalMeasureReal:
	default:
		return fmt.Errorf("goal measure %q is not supported", g.Measure)
	}

	if math.IsNaN(g.Target) || math.IsInf(g.Target, 0) || g.Target <= 0 {
		return fmt.Errorf("goal target must be a positive amount, got %v", g.Target)
	}

	lower, upper := g.Bounds()
	if lower < 0 {
		return fmt.Errorf("goal minimum cannot be negative, got %v", lower)
	}
	if upper <= lower {
		return fmt.Errorf("goal maximum %v must exceed minimum %v", upper, lower)
	}
	return nil
}

// WithField returns a copy of the resolved scenario with the goal field set
// to value.
func (r ResolvedScenario) WithField(field string, value float64) (ResolvedScenario, error) {
	switch CanonicalGoalField(field) {
	case GoalFieldMonthlyDeposit:
		r.MonthlyDeposit = value
	case GoalFieldInitialAmount:
		r.InitialAmount = value
	default:
		return r, fmt.Errorf("goal field %q is not supported", field)
	}
	return r, nil
}

// FieldValue returns the current value of a goal field.
func (r ResolvedScenario) FieldValue(field string) (float64, error) {
	switch CanonicalGoalField(field) {
	case GoalFieldMonthlyDeposit:
		return r.MonthlyDeposit, nil
	case GoalFieldInitialAmount:
		return r.InitialAmount, nil
	default:
		return 0, fmt.Errorf("goal field %q is not supported", field)
	}
}
