// Package config loads and validates run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ColinLaurent/MarketPrediction/strategies"
)

// Config is the complete configuration of a backtest run or API server.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}

// DataConfig locates the price dataset.
type DataConfig struct {
	Path    string   `json:"path" yaml:"path"`
	Tickers []string `json:"tickers" yaml:"tickers"`
}

// StrategyConfig selects and parameterizes the signal strategy.
type StrategyConfig struct {
	Name              string `json:"name" yaml:"name"`
	strategies.Params `yaml:",inline"`
}

// BacktestConfig contains the engine parameters.
type BacktestConfig struct {
	HoldMax        int     `json:"hold_max" yaml:"hold_max"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// JournalConfig selects run persistence.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ServerConfig contains the HTTP server parameters.
type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (or JSON for .json paths).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration before any run starts. Structural
// problems are reported here, never silently corrected.
func (c *Config) Validate() error {
	if len(c.Data.Tickers) == 0 {
		return fmt.Errorf("data.tickers is required")
	}
	if c.Backtest.HoldMax <= 0 {
		return fmt.Errorf("backtest.hold_max must be positive")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if _, err := strategies.ByName(c.Strategy.Name, c.Strategy.Params); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal runs_file, trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// BuildStrategy constructs the configured strategy.
func (c *Config) BuildStrategy() (strategies.Strategy, error) {
	return strategies.ByName(c.Strategy.Name, c.Strategy.Params)
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:    "./prices.csv",
			Tickers: []string{"AAPL"},
		},
		Strategy: StrategyConfig{
			Name: "trend",
			Params: strategies.Params{
				ShortWindow: 5,
				LongWindow:  20,
				Threshold:   0.9,
				Period:      14,
				Low:         30,
				High:        70,
			},
		},
		Backtest: BacktestConfig{
			HoldMax:        14,
			InitialCapital: 1000,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
