// Package config defines the data structures related to configuration and
// includes functions for loading, validating and converting it into
// projection inputs.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iwvelando/deposit-forecast/pkg/constants"
	"github.com/spf13/viper"
)

// DefaultScenarioName names the implicit scenario used when none are configured.
const DefaultScenarioName = "default"

// Configuration holds all configuration for deposit-forecast.
type Configuration struct {
	Common    Common        `yaml:"common"`
	Scenarios []Scenario    `yaml:"scenarios,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, xlsx
	Currency string `yaml:"currency,omitempty"` // display label, e.g. ₽
}

// Common holds the deposit parameters shared by every scenario. Rates and
// inflations are percentages per year, first year first.
type Common struct {
	InitialAmount    float64   `yaml:"initialAmount"`
	MonthlyDeposit   float64   `yaml:"monthlyDeposit"`
	Years            int       `yaml:"years"`
	Rates            []float64 `yaml:"rates,omitempty"`
	InflationEnabled bool      `yaml:"inflationEnabled"`
	Inflations       []float64 `yaml:"inflations,omitempty"`
}

// Scenario describes one projection. Unset fields fall back to Common.
type Scenario struct {
	Name             string      `yaml:"name"`
	Active           bool        `yaml:"active"`
	InitialAmount    *float64    `yaml:"initialAmount,omitempty"`
	MonthlyDeposit   *float64    `yaml:"monthlyDeposit,omitempty"`
	Years            *int        `yaml:"years,omitempty"`
	Rates            []float64   `yaml:"rates,omitempty"`
	InflationEnabled *bool       `yaml:"inflationEnabled,omitempty"`
	Inflations       []float64   `yaml:"inflations,omitempty"`
	Goal             *GoalConfig `yaml:"goal,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if configuration.Output.Currency == "" {
		configuration.Output.Currency = constants.DefaultCurrency
	}
	return &configuration, nil
}

// EffectiveScenarios returns the configured scenarios, or a single active
// scenario built from Common when none are configured.
func (c *Configuration) EffectiveScenarios() []Scenario {
	if len(c.Scenarios) == 0 {
		return []Scenario{{Name: DefaultScenarioName, Active: true}}
	}
	return c.Scenarios
}

// ActiveScenarios returns the scenarios that will be projected.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.EffectiveScenarios() {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}
