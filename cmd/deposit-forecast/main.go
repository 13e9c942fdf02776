package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/internal/logging"
	"github.com/iwvelando/deposit-forecast/internal/optimizer"
	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/iwvelando/deposit-forecast/pkg/output"
	"github.com/iwvelando/deposit-forecast/pkg/validation"
	"go.uber.org/zap"
)

// writeOutput renders results in the requested format.
func writeOutput(w io.Writer, outputFormat string, results []forecast.Forecast, currency string) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return output.WritePretty(w, results, currency)
	case constants.OutputFormatCSV:
		return output.WriteCSV(w, results)
	case constants.OutputFormatXLSX:
		return output.XlsxFormat(w, results, currency)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// selectScenario narrows results to the named scenario when one is given.
func selectScenario(results []forecast.Forecast, name string) ([]forecast.Forecast, error) {
	if name == "" {
		return results, nil
	}
	found := forecast.FindScenario(results, name)
	if found == nil {
		return nil, fmt.Errorf("no active scenario named %q", name)
	}
	return []forecast.Forecast{*found}, nil
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	outputFile := flag.String("output-file", "", "write output to this file instead of stdout")
	scenarioName := flag.String("scenario", "", "only output the named scenario")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := optimizer.Solve(logger, conf, results); err != nil {
		logger.Fatal("failed to solve savings goals",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	results, err = selectScenario(results, *scenarioName)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *outputFile == "" {
		if outputFormat == constants.OutputFormatPretty {
			output.PrettyFormat(results, conf.Output.Currency)
			return
		}
		if err := writeOutput(os.Stdout, outputFormat, results, conf.Output.Currency); err != nil {
			logger.Fatal("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		logger.Fatal("failed to create output file",
			zap.String("op", "main"),
			zap.String("path", *outputFile),
			zap.Error(err),
		)
	}
	if err := writeOutput(file, outputFormat, results, conf.Output.Currency); err != nil {
		_ = file.Close()
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("path", *outputFile),
			zap.Error(err),
		)
	}
	if err := file.Close(); err != nil {
		logger.Fatal("failed to close output file",
			zap.String("op", "main"),
			zap.String("path", *outputFile),
			zap.Error(err),
		)
	}
	logger.Info("forecast written",
		zap.String("op", "main"),
		zap.String("path", *outputFile),
		zap.String("format", outputFormat),
		zap.Int("scenarios", len(results)),
	)
}
