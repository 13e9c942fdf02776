// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/internal/optimizer"
	"go.uber.org/zap"
)

// FixturePath returns the path of name inside the repository's test
// directory, independent of the calling package's working directory.
func FixturePath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "test", name)
}

// LoadForecasts loads the configuration at path and runs it the way the
// command line tool does: forecast first, then savings goals.
func LoadForecasts(tb testing.TB, path string) (*config.Configuration, []forecast.Forecast) {
	tb.Helper()

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		tb.Fatalf("LoadConfiguration() error = %v", err)
	}

	logger := zap.NewNop()
	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		tb.Fatalf("GetForecast() error = %v", err)
	}
	if err := optimizer.Solve(logger, conf, results); err != nil {
		tb.Fatalf("Solve() error = %v", err)
	}
	return conf, results
}

// AlmostEqual reports whether a and b differ by at most tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
