// Package finance implements the deposit projection: monthly accrual of
// interest on a savings balance with a fixed contribution, and deflation of
// that balance by year-by-year inflation.
package finance

import (
	"math"

	"github.com/iwvelando/deposit-forecast/pkg/constants"
)

// ProjectionInput holds everything needed to project a deposit. Rates are
// fractions (0.12 for 12%), not percentages.
type ProjectionInput struct {
	InitialAmount    float64
	MonthlyDeposit   float64
	Years            int
	AnnualRates      YearlyRates
	AnnualInflations YearlyRates
}

// MonthlyRecord captures the state of the deposit at the end of one month.
type MonthlyRecord struct {
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	BalanceBeforeDeposit float64 `json:"balanceBeforeDeposit"`
	InterestAccrued      float64 `json:"interestAccrued"`
	DepositApplied       float64 `json:"depositApplied"`
	BalanceAfter         float64 `json:"balanceAfter"`
	InflationFactor      float64 `json:"inflationFactor"`
	RealBalance          float64 `json:"realBalance"`
	RealGrowth           float64 `json:"realGrowth"`
}

// ProjectionResult is the month-by-month outcome of a projection plus the
// metrics derived from it.
type ProjectionResult struct {
	Records []MonthlyRecord `json:"records"`
	Summary Summary         `json:"summary"`
}

// Months returns the number of simulated months for the input's horizon.
func (in ProjectionInput) Months() int {
	if in.Years <= 0 {
		return 0
	}
	return in.Years * constants.MonthsPerYear
}

// YearOfMonth maps a 1-based month index onto its 1-based year.
func YearOfMonth(month int) int {
	return (month-1)/constants.MonthsPerYear + 1
}

// MonthlyRate converts a nominal annual rate into the simple monthly rate
// applied to the balance.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}

// MonthlyInflation converts an annual inflation rate into the geometric
// monthly rate that compounds back to it over twelve months.
func MonthlyInflation(annualInflation float64) float64 {
	return math.Pow(1+annualInflation, 1.0/constants.MonthsPerYear) - 1
}

// Project runs the deposit simulation. Interest for a month accrues on the
// balance carried in from the previous month; the month's deposit is added
// after interest and earns nothing until the following month.
func Project(input ProjectionInput) ProjectionResult {
	months := input.Months()
	records := make([]MonthlyRecord, 0, months)

	balance := input.InitialAmount
	for month := 1; month <= months; month++ {
		year := YearOfMonth(month)
		interest := balance * MonthlyRate(input.AnnualRates.For(year))
		balance += interest
		balance += input.MonthlyDeposit

		records = append(records, MonthlyRecord{
			Month:                month,
			Year:                 year,
			BalanceBeforeDeposit: balance - input.MonthlyDeposit,
			InterestAccrued:      interest,
			DepositApplied:       input.MonthlyDeposit,
			BalanceAfter:         balance,
		})
	}

	deflate(records, input)

	return ProjectionResult{
		Records: records,
		Summary: summarize(records, input),
	}
}

// deflate fills the inflation columns of records in place.
func deflate(records []MonthlyRecord, input ProjectionInput) {
	factor := 1.0
	for i := range records {
		factor *= 1 + MonthlyInflation(input.AnnualInflations.For(records[i].Year))
		records[i].InflationFactor = factor
		records[i].RealBalance = records[i].BalanceAfter / factor
	}

	for i := range records {
		if i == 0 {
			// The opening principal is deflated by month 1's own factor.
			records[i].RealGrowth = records[i].RealBalance - input.InitialAmount/records[i].InflationFactor
			continue
		}
		records[i].RealGrowth = records[i].RealBalance - records[i-1].RealBalance
	}
}
