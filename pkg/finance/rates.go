package finance

// YearlyRates is an ordered table of annual fractional rates where entry i
// applies to year i+1. A YearlyRates value is immutable once built.
type YearlyRates struct {
	values []float64
}

// NewYearlyRates builds a rate table from fractional annual rates, first year first.
func NewYearlyRates(values ...float64) YearlyRates {
	copied := make([]float64, len(values))
	copy(copied, values)
	return YearlyRates{values: copied}
}

// Uniform builds a table that applies the same rate to every year of the horizon.
func Uniform(years int, rate float64) YearlyRates {
	if years < 0 {
		years = 0
	}
	values := make([]float64, years)
	for i := range values {
		values[i] = rate
	}
	return YearlyRates{values: values}
}

// Len returns the number of years with an explicit rate.
func (r YearlyRates) Len() int {
	return len(r.values)
}

// For returns the rate for a 1-based year. Years past the end of the table
// reuse the last entry and years before 1 use the first entry. An empty
// table yields 0.
func (r YearlyRates) For(year int) float64 {
	if len(r.values) == 0 {
		return 0
	}
	idx := year - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.values) {
		idx = len(r.values) - 1
	}
	return r.values[idx]
}

// Values returns a copy of the table, first year first.
func (r YearlyRates) Values() []float64 {
	copied := make([]float64, len(r.values))
	copy(copied, r.values)
	return copied
}
