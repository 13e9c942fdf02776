package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/deposit-forecast/internal/config"
	"github.com/iwvelando/deposit-forecast/internal/forecast"
	"github.com/iwvelando/deposit-forecast/internal/optimizer"
	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/iwvelando/deposit-forecast/pkg/finance"
	"github.com/iwvelando/deposit-forecast/pkg/format"
	"github.com/iwvelando/deposit-forecast/pkg/optimization"
	"github.com/iwvelando/deposit-forecast/pkg/output"
	"github.com/iwvelando/deposit-forecast/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	currency      string
}

// Option customises the handler returned by NewHandler.
type Option func(*handler)

// WithCurrency sets the currency label used when a request does not name one.
func WithCurrency(currency string) Option {
	return func(h *handler) {
		if trimmed := strings.TrimSpace(currency); trimmed != "" {
			h.currency = trimmed
		}
	}
}

// NewHandler constructs the HTTP handler that serves the web UI and projection API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		currency:      constants.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()

	// Single deposit from the web form
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Full YAML configuration upload
	mux.HandleFunc("/api/forecast", h.handleForecast)

	// Monthly table downloads
	mux.HandleFunc("/api/export/xlsx", h.handleExport(constants.OutputFormatXLSX))
	mux.HandleFunc("/api/export/csv", h.handleExport(constants.OutputFormatCSV))

	// Suggested per-year rates and inflations for the form
	mux.HandleFunc("/api/defaults", h.handleDefaults)

	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

// projectionRequest is the web form payload. Rates and inflations are
// percentages, one per year.
type projectionRequest struct {
	Name             string             `json:"name"`
	InitialAmount    float64            `json:"initialAmount"`
	MonthlyDeposit   float64            `json:"monthlyDeposit"`
	Years            int                `json:"years"`
	Rates            []float64          `json:"rates"`
	InflationEnabled bool               `json:"inflationEnabled"`
	Inflations       []float64          `json:"inflations"`
	Currency         string             `json:"currency"`
	Goal             *config.GoalConfig `json:"goal,omitempty"`
}

// configuration wraps the request in a single active scenario. Years is set
// on the scenario so that a missing or zero horizon is rejected rather than
// defaulted.
func (req projectionRequest) configuration(currency string) config.Configuration {
	years := req.Years
	return config.Configuration{
		Common: config.Common{
			InitialAmount:    req.InitialAmount,
			MonthlyDeposit:   req.MonthlyDeposit,
			Rates:            req.Rates,
			InflationEnabled: req.InflationEnabled,
			Inflations:       req.Inflations,
		},
		Scenarios: []config.Scenario{{Name: req.Name, Active: true, Years: &years, Goal: req.Goal}},
		Output:    config.OutputConfig{Currency: currency},
	}
}

type forecastResponse struct {
	Currency  string             `json:"currency"`
	Scenarios []scenarioResponse `json:"scenarios"`
	CSV       string             `json:"csv"`
	Warnings  []string           `json:"warnings,omitempty"`
	Duration  string             `json:"duration"`
}

type scenarioResponse struct {
	Name             string                  `json:"name"`
	InflationEnabled bool                    `json:"inflationEnabled"`
	Rates            []float64               `json:"rates"`
	Inflations       []float64               `json:"inflations"`
	Summary          finance.Summary         `json:"summary"`
	Display          displaySummary          `json:"display"`
	Goal             *optimization.Summary   `json:"goal,omitempty"`
	Years            []finance.YearSummary   `json:"years"`
	Rows             []finance.MonthlyRecord `json:"rows"`
	Series           finance.ChartSeries     `json:"series"`
}

// displaySummary carries the summary metrics already formatted for display.
type displaySummary struct {
	TotalDeposited           string `json:"totalDeposited"`
	FinalBalance             string `json:"finalBalance"`
	FinalRealBalance         string `json:"finalRealBalance"`
	NominalProfit            string `json:"nominalProfit"`
	RealProfit               string `json:"realProfit,omitempty"`
	AverageMonthlyInterest   string `json:"averageMonthlyInterest"`
	AverageRealMonthlyGrowth string `json:"averageRealMonthlyGrowth,omitempty"`
}

type defaultsResponse struct {
	Years          int       `json:"years"`
	MonthlyDeposit float64   `json:"monthlyDeposit"`
	Rates          []float64 `json:"rates"`
	Inflations     []float64 `json:"inflations"`
	Currency       string    `json:"currency"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, err := h.decodeProjectionRequest(w, r)
	if err != nil {
		h.respondErrorWithOp(w, decodeStatus(err), err.Error(), "server.handleProjection")
		return
	}

	h.runForecast(w, req.configuration(h.currencyFor(req.Currency)), start, "server.handleProjection")
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleForecast"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err))
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.runForecast(w, *cfg, start, "server.handleForecast")
}

func (h *handler) handleExport(outputFormat string) http.HandlerFunc {
	op := "server.handleExport"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		req, err := h.decodeProjectionRequest(w, r)
		if err != nil {
			h.respondErrorWithOp(w, decodeStatus(err), err.Error(), op)
			return
		}

		conf := req.configuration(h.currencyFor(req.Currency))
		results, err := forecast.GetForecast(h.logger, conf)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}

		var body bytes.Buffer
		switch outputFormat {
		case constants.OutputFormatXLSX:
			if err := output.XlsxFormat(&body, results, conf.Output.Currency); err != nil {
				h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
				return
			}
			w.Header().Set("Content-Type", xlsxContentType)
			w.Header().Set("Content-Disposition", `attachment; filename="deposit-forecast.xlsx"`)
		default:
			if err := output.WriteCSV(&body, results); err != nil {
				h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="deposit-forecast.csv"`)
		}

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body.Bytes()); err != nil {
			h.logger.Warn("failed to write export",
				zap.String("op", op),
				zap.String("format", outputFormat),
				zap.Error(err),
			)
		}
	}
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	years := constants.DefaultYears
	if raw := strings.TrimSpace(r.URL.Query().Get("years")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid years %q", raw), "server.handleDefaults")
			return
		}
		years = parsed
	}
	if err := validation.ValidateYears(years); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleDefaults")
		return
	}

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		Years:          years,
		MonthlyDeposit: constants.DefaultMonthlyDeposit,
		Rates:          config.DefaultRatePercents(years),
		Inflations:     config.DefaultInflationPercents(years),
		Currency:       h.currency,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeProjectionRequest(w http.ResponseWriter, r *http.Request) (projectionRequest, error) {
	var req projectionRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return req, fmt.Errorf("request body exceeds limit of %d bytes: %w", h.maxUploadSize, err)
		}
		return req, fmt.Errorf("failed to decode projection request: %w", err)
	}
	return req, nil
}

// decodeStatus maps a request decoding error to its response status.
func decodeStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *handler) runForecast(w http.ResponseWriter, conf config.Configuration, start time.Time, op string) {
	conf.Output.Currency = h.currencyFor(conf.Output.Currency)
	warnings := conf.ValidateConfiguration()

	results, err := forecast.GetForecast(h.logger, conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := optimizer.Solve(h.logger, &conf, results); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	currency := conf.Output.Currency
	elapsed := time.Since(start)

	response := forecastResponse{
		Currency:  currency,
		Scenarios: buildScenarios(results, currency),
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) currencyFor(requested string) string {
	if trimmed := strings.TrimSpace(requested); trimmed != "" {
		return trimmed
	}
	return h.currency
}

func buildScenarios(results []forecast.Forecast, currency string) []scenarioResponse {
	scenarios := make([]scenarioResponse, 0, len(results))
	for _, result := range results {
		summary := result.Result.Summary
		display := displaySummary{
			TotalDeposited:         format.Currency(summary.TotalDeposited, currency),
			FinalBalance:           format.Currency(summary.FinalBalance, currency),
			FinalRealBalance:       format.Currency(summary.FinalRealBalance, currency),
			NominalProfit:          format.Currency(summary.NominalProfit, currency),
			AverageMonthlyInterest: format.Currency(summary.AverageMonthlyInterest, currency),
		}
		if result.InflationEnabled {
			display.RealProfit = format.Currency(summary.RealProfit, currency)
			display.AverageRealMonthlyGrowth = format.Currency(summary.AverageRealMonthlyGrowth, currency)
		}

		scenarios = append(scenarios, scenarioResponse{
			Name:             result.Name,
			InflationEnabled: result.InflationEnabled,
			Rates:            result.Input.AnnualRates.Values(),
			Inflations:       result.Input.AnnualInflations.Values(),
			Summary:          summary,
			Display:          display,
			Goal:             result.Goal,
			Years:            result.Result.Yearly(),
			Rows:             result.Result.Records,
			Series:           result.Result.Series(),
		})
	}
	return scenarios
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleForecast")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("forecast request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
