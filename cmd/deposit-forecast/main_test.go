package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/iwvelando/deposit-forecast/pkg/testutil"
	"github.com/xuri/excelize/v2"
)

func loadTestForecasts(t *testing.T) []forecast.Forecast {
	t.Helper()
	_, results := testutil.LoadForecasts(t, testutil.FixturePath("test_config.yaml"))
	return results
}

func TestWriteOutput(t *testing.T) {
	results := loadTestForecasts(t)

	var pretty bytes.Buffer
	if err := writeOutput(&pretty, constants.OutputFormatPretty, results, "₽"); err != nil {
		t.Fatalf("pretty output error = %v", err)
	}
	if !strings.Contains(pretty.String(), "--- Results for scenario Base ---") {
		t.Errorf("pretty output missing Base scenario")
	}

	var csvOut bytes.Buffer
	if err := writeOutput(&csvOut, constants.OutputFormatCSV, results, "₽"); err != nil {
		t.Fatalf("csv output error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csvOut.String()), "\n")
	if len(lines) != 1+2*36 {
		t.Errorf("expected header plus 72 rows, got %d", len(lines))
	}

	var xlsxOut bytes.Buffer
	if err := writeOutput(&xlsxOut, constants.OutputFormatXLSX, results, "₽"); err != nil {
		t.Fatalf("xlsx output error = %v", err)
	}
	f, err := excelize.OpenReader(&xlsxOut)
	if err != nil {
		t.Fatalf("xlsx output is not a workbook: %v", err)
	}
	defer func() { _ = f.Close() }()
	if len(f.GetSheetList()) != 3 {
		t.Errorf("expected summary plus two scenario sheets, got %v", f.GetSheetList())
	}

	if err := writeOutput(&bytes.Buffer{}, "html", results, "₽"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSelectScenario(t *testing.T) {
	results := loadTestForecasts(t)

	all, err := selectScenario(results, "")
	if err != nil || len(all) != len(results) {
		t.Fatalf("empty name should keep every scenario, got %d (%v)", len(all), err)
	}

	one, err := selectScenario(results, "With inflation")
	if err != nil {
		t.Fatalf("selectScenario() error = %v", err)
	}
	if len(one) != 1 || !one[0].InflationEnabled {
		t.Errorf("unexpected selection %+v", one)
	}

	if _, err := selectScenario(results, "Larger start"); err == nil {
		t.Error("inactive scenario should not be selectable")
	}
}
