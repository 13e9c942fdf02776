// Package format renders monetary amounts for display.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/deposit-forecast/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns an amount rounded to whole units with thousands separators
// and the currency label as a suffix (e.g., "-1,234,567 ₽").
func Currency(amount float64, label string) string {
	formatted := NumericCurrency(amount)
	label = strings.TrimSpace(label)
	if label == "" {
		return formatted
	}
	return formatted + " " + label
}

// NumericCurrency returns an amount rounded to whole units with thousands
// separators and no label (e.g., "-1,234,567").
func NumericCurrency(amount float64) string {
	rounded := math.Round(amount)
	if rounded == 0 {
		// Avoid rendering "-0" for small negative amounts.
		rounded = 0
	}
	return printer.Sprintf("%.0f", rounded)
}

// Percent renders a fractional rate as a percentage with up to two decimals
// (e.g., 0.125 -> "12.5%").
func Percent(fraction float64) string {
	value := strings.TrimRight(strings.TrimRight(printer.Sprintf("%.2f", mathutil.FractionToPercent(fraction)), "0"), ".")
	return value + "%"
}
