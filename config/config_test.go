package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 1000.0, cfg.Account.Cash)
	assert.Equal(t, "late-game-underdog", cfg.Backtest.Strategy)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name: "zero cash",
			config: &Config{
				Backtest: BacktestConfig{StatesPath: "s.csv", Strategy: "noop"},
			},
			wantErr: true,
			errMsg:  "account.cash must be positive",
		},
		{
			name: "missing states path",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{Strategy: "noop"},
			},
			wantErr: true,
			errMsg:  "backtest.states_path is required",
		},
		{
			name: "missing strategy",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{StatesPath: "s.csv"},
			},
			wantErr: true,
			errMsg:  "backtest.strategy is required",
		},
		{
			name: "unknown strategy",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{StatesPath: "s.csv", Strategy: "martingale"},
			},
			wantErr: true,
			errMsg:  "backtest.strategy",
		},
		{
			name: "bad journal type",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{StatesPath: "s.csv", Strategy: "noop"},
				Journal:  JournalConfig{Type: "postgres"},
			},
			wantErr: true,
			errMsg:  "journal.type",
		},
		{
			name: "csv journal missing files",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{StatesPath: "s.csv", Strategy: "noop"},
				Journal:  JournalConfig{Type: "csv", TradesFile: "t.csv"},
			},
			wantErr: true,
			errMsg:  "equity_file",
		},
		{
			name: "sqlite journal missing path",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{StatesPath: "s.csv", Strategy: "noop"},
				Journal:  JournalConfig{Type: "sqlite"},
			},
			wantErr: true,
			errMsg:  "db_path",
		},
		{
			name: "journal optional",
			config: &Config{
				Account:  AccountConfig{Cash: 1000},
				Backtest: BacktestConfig{StatesPath: "s.csv", Strategy: "noop"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Backtest.Params = map[string]float64{"stake": 50}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account.Cash, loaded.Account.Cash)
			assert.Equal(t, cfg.Backtest.Strategy, loaded.Backtest.Strategy)
			assert.Equal(t, 50.0, loaded.Backtest.Params["stake"])
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}
