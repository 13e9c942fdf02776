package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/internal/optimizer"
	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/iwvelando/deposit-forecast/pkg/finance"
	"github.com/iwvelando/deposit-forecast/pkg/testutil"
	"go.uber.org/zap"
)

// TestPerformance times the longest supported horizon together with a goal
// search over it.
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	conf := config.Configuration{
		Common: config.Common{
			MonthlyDeposit:   50000,
			Years:            constants.MaxYears,
			InflationEnabled: true,
		},
		Scenarios: []config.Scenario{
			{Name: "Fifty years", Active: true},
			{Name: "Fifty year goal", Active: true, Goal: &config.GoalConfig{Target: 1e9}},
		},
	}

	start := time.Now()
	results, err := forecast.GetForecast(logger, conf)
	if err != nil {
		t.Fatalf("GetForecast failed: %v", err)
	}
	forecastTime := time.Since(start)

	start = time.Now()
	if err := optimizer.Solve(logger, &conf, results); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	goalTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Generate forecast: %v", forecastTime)
	t.Logf("  Solve goal: %v", goalTime)

	if total := forecastTime + goalTime; total > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", total)
	}

	for _, result := range results {
		if len(result.Result.Records) != constants.MaxYears*constants.MonthsPerYear {
			t.Errorf("Scenario %s has %d records, expected %d",
				result.Name, len(result.Result.Records), constants.MaxYears*constants.MonthsPerYear)
		}
	}
	if goal := forecast.FindScenario(results, "Fifty year goal").Goal; goal == nil || !goal.Converged {
		t.Errorf("expected the fifty year goal to converge, got %+v", goal)
	}
}

// TestDataConsistency validates that multiple runs produce identical results
func TestDataConsistency(t *testing.T) {
	_, first := testutil.LoadForecasts(t, testutil.FixturePath("test_config.yaml"))

	for run := 0; run < 5; run++ {
		_, again := testutil.LoadForecasts(t, testutil.FixturePath("test_config.yaml"))
		if len(again) != len(first) {
			t.Fatalf("run %d: %d scenarios, expected %d", run, len(again), len(first))
		}
		for i := range first {
			a, b := first[i].Result.Records, again[i].Result.Records
			if len(a) != len(b) {
				t.Fatalf("run %d: scenario %s record count changed", run, first[i].Name)
			}
			for m := range a {
				if a[m] != b[m] {
					t.Fatalf("run %d: scenario %s month %d differs: %+v vs %+v",
						run, first[i].Name, m+1, a[m], b[m])
				}
			}
		}
	}
}

// TestConfigurationVariations projects a spread of horizons and rates and
// checks the invariants every projection must satisfy.
func TestConfigurationVariations(t *testing.T) {
	variations := []finance.ProjectionInput{
		{InitialAmount: 0, MonthlyDeposit: 50000, Years: 1, AnnualRates: finance.NewYearlyRates(0.16)},
		{InitialAmount: 1000000, MonthlyDeposit: 0, Years: 10, AnnualRates: finance.NewYearlyRates(0.07)},
		{InitialAmount: 250000, MonthlyDeposit: 10000, Years: 25, AnnualRates: finance.NewYearlyRates(0.16, 0.13, 0.10, 0.07), AnnualInflations: finance.NewYearlyRates(0.04)},
		{InitialAmount: 0, MonthlyDeposit: 1, Years: constants.MaxYears, AnnualRates: finance.NewYearlyRates(0)},
	}

	for _, input := range variations {
		result := finance.Project(input)

		if len(result.Records) != input.Years*constants.MonthsPerYear {
			t.Errorf("years=%d: %d records", input.Years, len(result.Records))
			continue
		}

		previous := input.InitialAmount
		for _, record := range result.Records {
			if record.BalanceAfter < previous {
				t.Errorf("years=%d: balance decreased at month %d", input.Years, record.Month)
				break
			}
			if record.InflationFactor < 1 {
				t.Errorf("years=%d: inflation factor below one at month %d", input.Years, record.Month)
				break
			}
			previous = record.BalanceAfter
		}

		summary := result.Summary
		interest := 0.0
		for _, record := range result.Records {
			interest += record.InterestAccrued
		}
		expected := summary.TotalDeposited + interest
		if !testutil.AlmostEqual(summary.FinalBalance, expected, 1e-6*expected+1e-6) {
			t.Errorf("years=%d: final balance %.2f does not equal principal plus interest %.2f",
				input.Years, summary.FinalBalance, expected)
		}
	}
}
