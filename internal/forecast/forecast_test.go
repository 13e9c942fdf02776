package forecast

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

func TestGetForecastFromTestConfig(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	conf, err := config.LoadConfiguration(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}

	results, err := GetForecast(logger, *conf)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 active scenarios, got %d", len(results))
	}
	if results[0].Name != "Base" || results[1].Name != "With inflation" {
		t.Errorf("unexpected scenario order: %s, %s", results[0].Name, results[1].Name)
	}
	if FindScenario(results, "Larger start") != nil {
		t.Error("inactive scenario should not be projected")
	}

	base := FindScenario(results, "Base")
	if base == nil {
		t.Fatal("Base scenario not found")
	}
	if base.InflationEnabled {
		t.Error("Base scenario should not track inflation")
	}
	if len(base.Result.Records) != 36 {
		t.Errorf("expected 36 monthly records, got %d", len(base.Result.Records))
	}
	if base.Result.Summary.TotalDeposited != 1800000 {
		t.Errorf("TotalDeposited = %v, expected 1800000", base.Result.Summary.TotalDeposited)
	}
	if base.Result.Summary.FinalRealBalance != base.Result.Summary.FinalBalance {
		t.Error("without inflation the real balance should equal the nominal balance")
	}

	inflated := FindScenario(results, "With inflation")
	if inflated == nil {
		t.Fatal("With inflation scenario not found")
	}
	if !inflated.InflationEnabled {
		t.Error("With inflation scenario should track inflation")
	}
	if !mathutil.WithinTolerance(inflated.Result.Summary.FinalBalance, base.Result.Summary.FinalBalance, 1e-6) {
		t.Error("inflation must not change the nominal balance")
	}
	if inflated.Result.Summary.FinalRealBalance >= inflated.Result.Summary.FinalBalance {
		t.Error("inflation should reduce the real balance")
	}
	expectedFactor := 1.08 * 1.06 * 1.04
	lastFactor := inflated.Result.Records[35].InflationFactor
	if !mathutil.WithinRelativeTolerance(lastFactor, expectedFactor, 1e-9) {
		t.Errorf("cumulative inflation factor = %.12f, expected %.12f", lastFactor, expectedFactor)
	}
}

func TestGetForecastDefaultScenario(t *testing.T) {
	conf := config.Configuration{
		Common: config.Common{MonthlyDeposit: 50000, Years: 1, Rates: []float64{12}},
	}

	results, err := GetForecast(nil, conf)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if len(results) != 1 || results[0].Name != config.DefaultScenarioName {
		t.Fatalf("expected the implicit default scenario, got %+v", results)
	}

	last := results[0].Result.Records[11]
	if !mathutil.WithinTolerance(last.BalanceAfter, 634125.1506598487, 1e-6) {
		t.Errorf("final balance = %.10f, expected 634125.1506598487", last.BalanceAfter)
	}
}

func TestGetForecastInvalidScenario(t *testing.T) {
	conf := config.Configuration{
		Common: config.Common{MonthlyDeposit: 100, Years: 1, Rates: []float64{10}},
		Scenarios: []config.Scenario{
			{Name: "ok", Active: true},
			{Name: "broken", Active: true, Rates: []float64{250}},
		},
	}

	results, err := GetForecast(zap.NewNop(), conf)
	if err == nil {
		t.Fatal("expected error for out of range rate")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should name the scenario", err.Error())
	}
	if len(results) != 1 {
		t.Errorf("expected the scenarios before the failure to be returned, got %d", len(results))
	}
}
