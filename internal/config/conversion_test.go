package config

import (
	"math"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }
func boolPtr(v bool) *bool { return &v }

func TestDefaultRatePercent(t *testing.T) {
	tests := []struct {
		year     int
		expected float64
	}{
		{1, 16},
		{2, 13},
		{3, 10},
		{4, 7},
		{5, 7},
		{50, 7},
	}

	for _, tt := range tests {
		if got := DefaultRatePercent(tt.year); got != tt.expected {
			t.Errorf("DefaultRatePercent(%d) = %v, expected %v", tt.year, got, tt.expected)
		}
	}
}

func TestDefaultPercentLists(t *testing.T) {
	rates := DefaultRatePercents(4)
	expected := []float64{16, 13, 10, 7}
	if len(rates) != len(expected) {
		t.Fatalf("DefaultRatePercents(4) = %v", rates)
	}
	for i := range expected {
		if rates[i] != expected[i] {
			t.Errorf("DefaultRatePercents(4)[%d] = %v, expected %v", i, rates[i], expected[i])
		}
	}

	inflations := DefaultInflationPercents(2)
	if len(inflations) != 2 || inflations[0] != 4 || inflations[1] != 4 {
		t.Errorf("DefaultInflationPercents(2) = %v, expected [4 4]", inflations)
	}
}

func TestResolve(t *testing.T) {
	common := Common{
		InitialAmount:    1000,
		MonthlyDeposit:   500,
		Years:            3,
		Rates:            []float64{12, 11, 10},
		InflationEnabled: false,
	}

	tests := []struct {
		name              string
		scenario          Scenario
		expectedInitial   float64
		expectedDeposit   float64
		expectedYears     int
		expectedRates     []float64
		expectedInflation []float64
	}{
		{
			name:              "Inherits common",
			scenario:          Scenario{Name: "base", Active: true},
			expectedInitial:   1000,
			expectedDeposit:   500,
			expectedYears:     3,
			expectedRates:     []float64{12, 11, 10},
			expectedInflation: []float64{0, 0, 0},
		},
		{
			name: "Overrides and defaults for longer horizon",
			scenario: Scenario{
				Name:           "long",
				InitialAmount:  floatPtr(0),
				MonthlyDeposit: floatPtr(50000),
				Years:          intPtr(5),
			},
			expectedInitial:   0,
			expectedDeposit:   50000,
			expectedYears:     5,
			expectedRates:     []float64{12, 11, 10, 7, 7},
			expectedInflation: []float64{0, 0, 0, 0, 0},
		},
		{
			name: "Inflation enabled with partial list",
			scenario: Scenario{
				Name:             "inflation",
				InflationEnabled: boolPtr(true),
				Inflations:       []float64{8},
			},
			expectedInitial:   1000,
			expectedDeposit:   500,
			expectedYears:     3,
			expectedRates:     []float64{12, 11, 10},
			expectedInflation: []float64{8, 4, 4},
		},
		{
			name: "Shorter horizon drops extra entries",
			scenario: Scenario{
				Name:  "short",
				Years: intPtr(1),
				Rates: []float64{20, 30},
			},
			expectedInitial:   1000,
			expectedDeposit:   500,
			expectedYears:     1,
			expectedRates:     []float64{20},
			expectedInflation: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := tt.scenario.Resolve(common)
			if resolved.InitialAmount != tt.expectedInitial {
				t.Errorf("InitialAmount = %v, expected %v", resolved.InitialAmount, tt.expectedInitial)
			}
			if resolved.MonthlyDeposit != tt.expectedDeposit {
				t.Errorf("MonthlyDeposit = %v, expected %v", resolved.MonthlyDeposit, tt.expectedDeposit)
			}
			if resolved.Years != tt.expectedYears {
				t.Errorf("Years = %v, expected %v", resolved.Years, tt.expectedYears)
			}
			assertFloats(t, "RatePercents", resolved.RatePercents, tt.expectedRates)
			assertFloats(t, "InflationPercents", resolved.InflationPercents, tt.expectedInflation)
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	resolved := Scenario{Name: "  "}.Resolve(Common{})
	if resolved.Name != DefaultScenarioName {
		t.Errorf("Name = %q, expected %q", resolved.Name, DefaultScenarioName)
	}
	if resolved.Years != 3 {
		t.Errorf("Years = %d, expected default 3", resolved.Years)
	}
	assertFloats(t, "RatePercents", resolved.RatePercents, []float64{16, 13, 10})
}

func TestToInput(t *testing.T) {
	common := Common{MonthlyDeposit: 50000, Years: 2, Rates: []float64{12, 6}, InflationEnabled: true, Inflations: []float64{10, 5}}

	input, err := Scenario{Name: "base", Active: true}.ToInput(common)
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}

	if input.Years != 2 || input.MonthlyDeposit != 50000 {
		t.Errorf("unexpected input: %+v", input)
	}
	if math.Abs(input.AnnualRates.For(1)-0.12) > 1e-12 || math.Abs(input.AnnualRates.For(2)-0.06) > 1e-12 {
		t.Errorf("rates not converted to fractions: %v", input.AnnualRates.Values())
	}
	if math.Abs(input.AnnualInflations.For(1)-0.10) > 1e-12 || math.Abs(input.AnnualInflations.For(2)-0.05) > 1e-12 {
		t.Errorf("inflations not converted to fractions: %v", input.AnnualInflations.Values())
	}
	if input.AnnualRates.Len() != 2 || input.AnnualInflations.Len() != 2 {
		t.Errorf("expected exactly one entry per year")
	}
}

func TestToInputErrors(t *testing.T) {
	tests := []struct {
		name     string
		common   Common
		scenario Scenario
		contains string
	}{
		{
			name:     "Too many years",
			common:   Common{Years: 51},
			scenario: Scenario{Name: "long"},
			contains: "years",
		},
		{
			name:     "Explicit zero years",
			common:   Common{Years: 2},
			scenario: Scenario{Name: "empty", Years: intPtr(0)},
			contains: "years",
		},
		{
			name:     "Negative deposit",
			common:   Common{Years: 1, MonthlyDeposit: -5},
			scenario: Scenario{Name: "negative"},
			contains: "monthlyDeposit",
		},
		{
			name:     "Negative initial amount",
			common:   Common{Years: 1},
			scenario: Scenario{Name: "negative", InitialAmount: floatPtr(-1)},
			contains: "initialAmount",
		},
		{
			name:     "Rate above one hundred percent",
			common:   Common{Years: 2, Rates: []float64{10, 150}},
			scenario: Scenario{Name: "rate"},
			contains: "rate for year 2",
		},
		{
			name:     "Negative inflation",
			common:   Common{Years: 1, InflationEnabled: true, Inflations: []float64{-3}},
			scenario: Scenario{Name: "deflation"},
			contains: "inflation for year 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.scenario.ToInput(tt.common)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.contains)
			}
			if !strings.Contains(err.Error(), "scenario "+tt.scenario.Name) {
				t.Errorf("error %q does not name the scenario", err.Error())
			}
		})
	}
}

func TestDisabledInflationIgnoresList(t *testing.T) {
	input, err := Scenario{Name: "off", InflationEnabled: boolPtr(false)}.ToInput(Common{
		Years:      2,
		Inflations: []float64{50, 50},
	})
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}
	for year := 1; year <= 2; year++ {
		if input.AnnualInflations.For(year) != 0 {
			t.Errorf("year %d inflation = %v, expected 0 when disabled", year, input.AnnualInflations.For(year))
		}
	}
}

func assertFloats(t *testing.T, field string, got, expected []float64) {
	t.Helper()
	if len(got) != len(expected) {
		t.Errorf("%s = %v, expected %v", field, got, expected)
		return
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("%s = %v, expected %v", field, got, expected)
			return
		}
	}
}
