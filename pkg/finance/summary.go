package finance

import (
	"github.com/iwvelando/deposit-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Summary holds the headline figures of a projection.
type Summary struct {
	TotalDeposited           float64 `json:"totalDeposited"`
	FinalBalance             float64 `json:"finalBalance"`
	FinalRealBalance         float64 `json:"finalRealBalance"`
	NominalProfit            float64 `json:"nominalProfit"`
	RealProfit               float64 `json:"realProfit"`
	AverageMonthlyInterest   float64 `json:"averageMonthlyInterest"`
	AverageRealMonthlyGrowth float64 `json:"averageRealMonthlyGrowth"`
}

// YearSummary rolls the months of one year up into a single row.
type YearSummary struct {
	Year             int     `json:"year"`
	OpeningBalance   float64 `json:"openingBalance"`
	Deposited        float64 `json:"deposited"`
	Interest         float64 `json:"interest"`
	ClosingBalance   float64 `json:"closingBalance"`
	ClosingReal      float64 `json:"closingReal"`
	InflationFactor  float64 `json:"inflationFactor"`
	RealGrowthInYear float64 `json:"realGrowthInYear"`
}

// ChartSeries is the nominal and real balance against month, ready to plot.
type ChartSeries struct {
	Months  []int     `json:"months"`
	Nominal []float64 `json:"nominal"`
	Real    []float64 `json:"real"`
}

// TotalDeposited returns the initial amount plus every monthly deposit over
// the horizon, computed in decimal so the sum carries no rounding drift.
func TotalDeposited(input ProjectionInput) float64 {
	total := decimal.NewFromFloat(input.InitialAmount).Add(
		decimal.NewFromFloat(input.MonthlyDeposit).Mul(decimal.NewFromInt(int64(input.Months()))),
	)
	return total.InexactFloat64()
}

func summarize(records []MonthlyRecord, input ProjectionInput) Summary {
	summary := Summary{
		TotalDeposited:   TotalDeposited(input),
		FinalBalance:     input.InitialAmount,
		FinalRealBalance: input.InitialAmount,
	}

	if len(records) > 0 {
		last := records[len(records)-1]
		summary.FinalBalance = last.BalanceAfter
		summary.FinalRealBalance = last.RealBalance
	}

	interest := make([]float64, len(records))
	growth := make([]float64, len(records))
	for i, record := range records {
		interest[i] = record.InterestAccrued
		growth[i] = record.RealGrowth
	}

	summary.NominalProfit = summary.FinalBalance - summary.TotalDeposited
	summary.RealProfit = summary.FinalRealBalance - summary.TotalDeposited
	summary.AverageMonthlyInterest = mathutil.Mean(interest)
	summary.AverageRealMonthlyGrowth = mathutil.Mean(growth)
	return summary
}

// Yearly aggregates the monthly records by year.
func (r ProjectionResult) Yearly() []YearSummary {
	var years []YearSummary
	for _, record := range r.Records {
		if len(years) == 0 || years[len(years)-1].Year != record.Year {
			opening := record.BalanceBeforeDeposit - record.InterestAccrued
			years = append(years, YearSummary{
				Year:           record.Year,
				OpeningBalance: opening,
			})
		}
		current := &years[len(years)-1]
		current.Deposited += record.DepositApplied
		current.Interest += record.InterestAccrued
		current.RealGrowthInYear += record.RealGrowth
		current.ClosingBalance = record.BalanceAfter
		current.ClosingReal = record.RealBalance
		current.InflationFactor = record.InflationFactor
	}
	return years
}

// Series extracts the chart series from the monthly records.
func (r ProjectionResult) Series() ChartSeries {
	series := ChartSeries{
		Months:  make([]int, len(r.Records)),
		Nominal: make([]float64, len(r.Records)),
		Real:    make([]float64, len(r.Records)),
	}
	for i, record := range r.Records {
		series.Months[i] = record.Month
		series.Nominal[i] = record.BalanceAfter
		series.Real[i] = record.RealBalance
	}
	return series
}
