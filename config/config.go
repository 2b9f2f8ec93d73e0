package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oddslab/backcourt/strategies"
)

// Config represents the complete backtest configuration
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID   string  `json:"id" yaml:"id"`
	Cash float64 `json:"cash" yaml:"cash"`
}

// BacktestConfig names the dataset and the policy to replay over it
type BacktestConfig struct {
	StatesPath string             `json:"states_path" yaml:"states_path"`
	Strategy   string             `json:"strategy" yaml:"strategy"`
	Params     map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Cash <= 0 {
		return fmt.Errorf("account.cash must be positive")
	}
	if c.Backtest.StatesPath == "" {
		return fmt.Errorf("backtest.states_path is required")
	}
	if c.Backtest.Strategy == "" {
		return fmt.Errorf("backtest.strategy is required")
	}
	if _, err := strategies.ByName(c.Backtest.Strategy, c.Backtest.Params); err != nil {
		return fmt.Errorf("backtest.strategy: %w", err)
	}
	if c.Journal.Type != "" && c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.EquityFile == "") {
		return fmt.Errorf("journal trades_file and equity_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:   "SIM-001",
			Cash: 1000,
		},
		Backtest: BacktestConfig{
			StatesPath: "./states.csv",
			Strategy:   "late-game-underdog",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backcourt.db",
		},
	}
}
