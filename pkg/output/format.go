// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Forecast, currency string) {
	_ = WritePretty(os.Stdout, results, currency)
}

// WritePretty writes the summary metrics, the yearly roll-up and the monthly
// table of every forecast to w. Real-money columns appear only for
// forecasts that track inflation.
func WritePretty(w io.Writer, results []forecast.Forecast, currency string) error {
	money := func(amount float64) string { return format.Currency(amount, currency) }

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		summary := result.Result.Summary

		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		if result.InflationEnabled {
			fmt.Fprintln(tw, "Total deposited\t| Final balance\t| Profit\t| Real profit")
			fmt.Fprintf(tw, "%s\t| %s\t| %s\t| %s\n",
				money(summary.TotalDeposited), money(summary.FinalBalance),
				money(summary.NominalProfit), money(summary.RealProfit))
		} else {
			fmt.Fprintln(tw, "Total deposited\t| Final balance\t| Profit")
			fmt.Fprintf(tw, "%s\t| %s\t| %s\n",
				money(summary.TotalDeposited), money(summary.FinalBalance), money(summary.NominalProfit))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(w, "Average monthly interest: %s\n", money(summary.AverageMonthlyInterest))
		if result.InflationEnabled {
			fmt.Fprintf(w, "Average real monthly growth: %s\n", money(summary.AverageRealMonthlyGrowth))
		}
		if goal := result.Goal; goal != nil {
			if goal.Converged {
				fmt.Fprintf(w, "Savings goal: %s of %s reaches %s %s balance (configured %s)\n",
					goal.Field, money(goal.Value), money(goal.Target), goal.Measure, money(goal.Original))
			}
			for _, note := range goal.Notes {
				fmt.Fprintf(w, "Savings goal: %s\n", note)
			}
		}

		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		if result.InflationEnabled {
			fmt.Fprintln(tw, "Year\t| Rate\t| Inflation\t| Deposited\t| Interest\t| Balance\t| Real balance")
			fmt.Fprintln(tw, "____\t| ____\t| _________\t| _________\t| ________\t| _______\t| ____________")
		} else {
			fmt.Fprintln(tw, "Year\t| Rate\t| Deposited\t| Interest\t| Balance")
			fmt.Fprintln(tw, "____\t| ____\t| _________\t| ________\t| _______")
		}
		for _, year := range result.Result.Yearly() {
			rate := format.Percent(result.Input.AnnualRates.For(year.Year))
			if result.InflationEnabled {
				fmt.Fprintf(tw, "%d\t| %s\t| %s\t| %s\t| %s\t| %s\t| %s\n",
					year.Year, rate, format.Percent(result.Input.AnnualInflations.For(year.Year)),
					money(year.Deposited), money(year.Interest),
					money(year.ClosingBalance), money(year.ClosingReal))
			} else {
				fmt.Fprintf(tw, "%d\t| %s\t| %s\t| %s\t| %s\n",
					year.Year, rate, money(year.Deposited), money(year.Interest), money(year.ClosingBalance))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		if result.InflationEnabled {
			fmt.Fprintln(tw, "Month\t| Year\t| Deposit\t| Interest\t| Balance\t| Real balance\t| Real growth")
			fmt.Fprintln(tw, "_____\t| ____\t| _______\t| ________\t| _______\t| ____________\t| ___________")
		} else {
			fmt.Fprintln(tw, "Month\t| Year\t| Deposit\t| Interest\t| Balance")
			fmt.Fprintln(tw, "_____\t| ____\t| _______\t| ________\t| _______")
		}
		for _, record := range result.Result.Records {
			if result.InflationEnabled {
				fmt.Fprintf(tw, "%d\t| %d\t| %s\t| %s\t| %s\t| %s\t| %s\n",
					record.Month, record.Year, money(record.DepositApplied), money(record.InterestAccrued),
					money(record.BalanceAfter), money(record.RealBalance), money(record.RealGrowth))
			} else {
				fmt.Fprintf(tw, "%d\t| %d\t| %s\t| %s\t| %s\n",
					record.Month, record.Year, money(record.DepositApplied), money(record.InterestAccrued),
					money(record.BalanceAfter))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// CsvString renders the CSV output as a string.
func CsvString(results []forecast.Forecast) string {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

var csvHeader = []string{
	"scenario", "month", "year", "deposit", "interest", "balance before deposit",
	"balance", "inflation factor", "real balance", "real growth",
}

// WriteCSV writes one row per scenario and month to w.
func WriteCSV(w io.Writer, results []forecast.Forecast) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, result := range results {
		for _, record := range result.Result.Records {
			row := []string{
				result.Name,
				strconv.Itoa(record.Month),
				strconv.Itoa(record.Year),
				money2(record.DepositApplied),
				money2(record.InterestAccrued),
				money2(record.BalanceBeforeDeposit),
				money2(record.BalanceAfter),
				strconv.FormatFloat(record.InflationFactor, 'f', 6, 64),
				money2(record.RealBalance),
				money2(record.RealGrowth),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func money2(amount float64) string {
	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	if formatted == "-0.00" {
		return strings.TrimPrefix(formatted, "-")
	}
	return formatted
}
