// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/pkg/finance"
	"github.com/iwvelando/deposit-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Forecast holds the projection of one scenario. Position is the scenario's
// index in the configuration, which stays unique when names repeat. Goal is
// set when the scenario carries a savings goal and the optimizer has run.
type Forecast struct {
	Position         int
	Name             string
	InflationEnabled bool
	Input            finance.ProjectionInput
	Result           finance.ProjectionResult
	Goal             *optimization.Summary
}

// GetForecast projects every active scenario, in configuration order.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Forecast
	for position, scenario := range conf.EffectiveScenarios() {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		resolved := scenario.Resolve(conf.Common)
		input, err := resolved.ToInput()
		if err != nil {
			return results, err
		}

		result := finance.Project(input)
		logger.Debug("scenario projected",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", resolved.Name),
			zap.Int("months", len(result.Records)),
			zap.Float64("finalBalance", result.Summary.FinalBalance),
			zap.Float64("finalRealBalance", result.Summary.FinalRealBalance),
		)

		results = append(results, Forecast{
			Position:         position,
			Name:             resolved.Name,
			InflationEnabled: resolved.InflationEnabled,
			Input:            input,
			Result:           result,
		})
	}

	return results, nil
}

// FindScenario finds a forecast by name. Returns nil when absent.
func FindScenario(results []Forecast, name string) *Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
