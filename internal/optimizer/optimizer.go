// Package optimizer solves savings goals: for a scenario with a goal it
// searches for the smallest monthly deposit or initial amount whose
// projection reaches the target balance.
package optimizer

import (
	"fmt"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/pkg/finance"
	"github.com/iwvelando/deposit-forecast/pkg/format"
	"github.com/iwvelando/deposit-forecast/pkg/mathutil"
	"github.com/iwvelando/deposit-forecast/pkg/optimization"
	"go.uber.org/zap"
)

type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type goalTarget struct {
	position     int
	scenarioName string
	resolved     config.ResolvedScenario
	goal         config.GoalConfig
	original     float64
}

type evaluation struct {
	value    float64
	achieved float64
	target   float64
}

func (e evaluation) feasible() bool {
	return e.achieved >= e.target
}

func (e evaluation) surplus() float64 {
	return e.achieved - e.target
}

// Result summarizes goal searches keyed by scenario position, so scenarios
// sharing a name keep their own solutions.
type Result struct {
	Summaries map[int]optimization.Summary
}

// Empty indicates whether any goals were solved.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches goal summaries to the matching forecasts.
func (r Result) Apply(forecasts []forecast.Forecast) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range forecasts {
		summary, ok := r.Summaries[forecasts[i].Position]
		if !ok {
			continue
		}
		forecasts[i].Goal = &summary
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run solves every goal of the active scenarios. The configuration is not
// modified.
func (r *Runner) Run() (*Result, error) {
	targets, err := r.collectTargets()
	if err != nil {
		return nil, err
	}

	summaries := make(map[int]optimization.Summary)
	for _, target := range targets {
		summary, err := r.optimizeGoal(target)
		if err != nil {
			return nil, err
		}
		summaries[target.position] = summary

		r.logger.Info("optimizer solved savings goal",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", target.scenarioName),
			zap.Int("position", target.position),
			zap.String("field", summary.Field),
			zap.String("measure", summary.Measure),
			zap.Float64("target", summary.Target),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("achieved", summary.Achieved),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

func (r *Runner) collectTargets() ([]goalTarget, error) {
	var targets []goalTarget

	for position, scenario := range r.conf.EffectiveScenarios() {
		if !scenario.Active || scenario.Goal == nil {
			continue
		}

		resolved := scenario.Resolve(r.conf.Common)
		goal := *scenario.Goal
		if err := goal.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s goal: %w", resolved.Name, err)
		}
		if err := resolved.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", resolved.Name, err)
		}
		original, err := resolved.FieldValue(goal.Field)
		if err != nil {
			return nil, fmt.Errorf("scenario %s goal: %w", resolved.Name, err)
		}

		targets = append(targets, goalTarget{
			position:     position,
			scenarioName: resolved.Name,
			resolved:     resolved,
			goal:         goal,
			original:     original,
		})
	}

	return targets, nil
}

func (r *Runner) optimizeGoal(target goalTarget) (optimization.Summary, error) {
	goal := target.goal
	lower, upper := goal.Bounds()

	summary := optimization.Summary{
		Scenario: target.scenarioName,
		Field:    goal.Field,
		Measure:  goal.Measure,
		Target:   goal.Target,
		Original: target.original,
	}

	lowerEval, err := r.evaluate(target, lower)
	if err != nil {
		return optimization.Summary{}, err
	}
	if lowerEval.feasible() {
		return finish(summary, lowerEval, 0, true), nil
	}

	upperEval, err := r.evaluate(target, upper)
	if err != nil {
		return optimization.Summary{}, err
	}
	if !upperEval.feasible() {
		currency := r.conf.Output.Currency
		summary = finish(summary, upperEval, 0, false)
		summary.Notes = []string{fmt.Sprintf(
			"unable to reach %s %s balance with %s between %s and %s",
			format.Currency(goal.Target, currency),
			goal.Measure,
			goal.Field,
			format.Currency(lower, currency),
			format.Currency(upper, currency),
		)}
		return summary, nil
	}

	// The final balance never decreases as either field grows, so the
	// smallest feasible value lies in (lower, upper].
	iterations := 0
	best := upperEval
	for iterations < goal.MaxIterations && upper-lower > goal.Tolerance {
		mid := lower + (upper-lower)/2
		evalMid, err := r.evaluate(target, mid)
		if err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		if evalMid.feasible() {
			best = evalMid
			upper = mid
		} else {
			lower = mid
		}
	}

	return finish(summary, best, iterations, upper-lower <= goal.Tolerance), nil
}

func finish(summary optimization.Summary, eval evaluation, iterations int, converged bool) optimization.Summary {
	summary.Value = eval.value
	summary.Achieved = eval.achieved
	summary.Surplus = mathutil.Round(eval.surplus())
	summary.Iterations = iterations
	summary.Converged = converged
	return summary
}

func (r *Runner) evaluate(target goalTarget, value float64) (evaluation, error) {
	candidate, err := target.resolved.WithField(target.goal.Field, value)
	if err != nil {
		return evaluation{}, err
	}
	input, err := candidate.ToInput()
	if err != nil {
		return evaluation{}, fmt.Errorf("optimizer evaluation failed: %w", err)
	}

	return evaluation{
		value:    value,
		achieved: measure(finance.Project(input).Summary, target.goal.Measure),
		target:   target.goal.Target,
	}, nil
}

func measure(summary finance.Summary, kind string) float64 {
	if kind == config.GoalMeasureReal {
		return summary.FinalRealBalance
	}
	return summary.FinalBalance
}

// Solve runs the goal searches for conf and attaches them to results.
func Solve(logger *zap.Logger, conf *config.Configuration, results []forecast.Forecast) error {
	runner, err := NewRunner(logger, conf)
	if err != nil {
		return err
	}
	result, err := runner.Run()
	if err != nil {
		return err
	}
	result.Apply(results)
	return nil
}
