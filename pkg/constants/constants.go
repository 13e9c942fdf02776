// Package constants provides shared constants for the deposit-forecast application.
package constants

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MinYears is the shortest supported deposit horizon
	MinYears = 1

	// MaxYears is the longest supported deposit horizon
	MaxYears = 50

	// DefaultYears is the horizon used when none is configured
	DefaultYears = 3
)

// Default per-year inputs, in percent.
const (
	// DefaultFirstYearRate is the default nominal rate for year 1
	DefaultFirstYearRate = 16.0

	// DefaultRateStep is how much the default rate drops each following year
	DefaultRateStep = 3.0

	// DefaultRateFloor is the lowest default rate
	DefaultRateFloor = 7.0

	// DefaultInflation is the default annual inflation
	DefaultInflation = 4.0

	// DefaultMonthlyDeposit is the default monthly contribution
	DefaultMonthlyDeposit = 50000.0
)

// Numeric constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPercent is the largest accepted rate or inflation value, in percent
	MaxPercent = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the spreadsheet output format
	OutputFormatXLSX = "xlsx"

	// DefaultCurrency is the display label appended to currency amounts
	DefaultCurrency = "₽"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is loaded into the environment before server overrides are parsed
	DefaultEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
