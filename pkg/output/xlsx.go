package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet      = "Summary"
	maxSheetNameRunes = 31
)

var summaryHeader = []interface{}{
	"Scenario", "Total deposited", "Final balance", "Final real balance",
	"Profit", "Real profit", "Average monthly interest", "Average real monthly growth",
}

var monthlyHeader = []interface{}{
	"Month", "Year", "Deposit", "Interest", "Balance", "Inflation factor", "Real balance", "Real growth",
}

// XlsxFormat writes the forecasts to w as an XLSX workbook: a summary sheet
// followed by one monthly sheet per scenario.
func XlsxFormat(w io.Writer, results []forecast.Forecast, currency string) error {
	f, err := BuildWorkbook(results, currency)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook assembles the workbook for results.
func BuildWorkbook(results []forecast.Forecast, currency string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: currencyNumFmt(currency)})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create currency style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, summarySheet, 1, summaryHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "H1", headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i, result := range results {
		summary := result.Result.Summary
		row := i + 2
		values := []interface{}{
			result.Name, summary.TotalDeposited, summary.FinalBalance, summary.FinalRealBalance,
			summary.NominalProfit, summary.RealProfit, summary.AverageMonthlyInterest, summary.AverageRealMonthlyGrowth,
		}
		if err := writeRow(f, summarySheet, row, values); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("H%d", row), moneyStyle); err != nil {
			_ = f.Close()
			return nil, err
		}

		sheet := SheetName(result.Name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to add sheet for scenario %s: %w", result.Name, err)
		}
		if err := writeMonthlySheet(f, sheet, result, moneyStyle, headerStyle); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("scenario %s: %w", result.Name, err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "H", 20); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeMonthlySheet(f *excelize.File, sheet string, result forecast.Forecast, moneyStyle, headerStyle int) error {
	if err := writeRow(f, sheet, 1, monthlyHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	for i, record := range result.Result.Records {
		row := i + 2
		values := []interface{}{
			record.Month, record.Year, record.DepositApplied, record.InterestAccrued,
			record.BalanceAfter, record.InflationFactor, record.RealBalance, record.RealGrowth,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}

	if last := len(result.Result.Records) + 1; last > 1 {
		if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("E%d", last), moneyStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "G2", fmt.Sprintf("H%d", last), moneyStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "H", 16)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

// currencyNumFmt is a whole-unit number format with thousands separators and
// the currency label as a suffix.
func currencyNumFmt(currency string) *string {
	numFmt := "#,##0"
	if label := strings.TrimSpace(currency); label != "" {
		numFmt += ` "` + strings.ReplaceAll(label, `"`, ``) + `"`
	}
	return &numFmt
}

// SheetName turns a scenario name into a unique, valid worksheet name and
// records it in used.
func SheetName(name string, used map[string]bool) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	cleaned = strings.Trim(cleaned, "'")
	if cleaned == "" {
		cleaned = "Scenario"
	}
	cleaned = truncateRunes(cleaned, maxSheetNameRunes)

	candidate := cleaned
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(cleaned, maxSheetNameRunes-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
