package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/folio"
	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables read by folio. They are also passed to extensions.
const (
	EnvConfig      = "FOLIO_CONFIG"
	EnvLedgerFile  = "FOLIO_LEDGER_FILE"
	EnvCurrencies  = "FOLIO_CURRENCIES"
	EnvValuation   = "FOLIO_VALUATION"
	EnvLogLevel    = "FOLIO_LOG_LEVEL"
	EnvMetricsFile = "FOLIO_METRICS_FILE"
)

// DefaultConfigFile is read from the working directory when it exists.
const DefaultConfigFile = "folio.toml"

// Config holds the settings of the command line.
type Config struct {
	LedgerFile  string   `toml:"ledger_file"`
	Currencies  []string `toml:"currencies"`   // default holdings targets
	Valuation   string   `toml:"valuation"`    // "market" or "cost"
	LogLevel    string   `toml:"log_level"`    // "debug" enables traces
	MetricsFile string   `toml:"metrics_file"` // prometheus textfile, optional
}

// NewDefaultConfig returns a Config with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		LedgerFile: "main.jsonl",
		Valuation:  folio.AtMarket.String(),
		LogLevel:   "info",
	}
}

// LoadConfig loads configuration files in order, later files override
// earlier ones, then applies environment overrides. Missing files are
// skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(config)
	return config, config.Validate()
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv(EnvLedgerFile); v != "" {
		config.LedgerFile = v
	}
	if v := os.Getenv(EnvCurrencies); v != "" {
		config.Currencies = splitList(v)
	}
	if v := os.Getenv(EnvValuation); v != "" {
		config.Valuation = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		config.MetricsFile = v
	}
}

// Validate normalizes currency codes and checks them against ISO 4217, and
// checks the valuation.
func (c *Config) Validate() error {
	for i, cur := range c.Currencies {
		cur = strings.ToUpper(strings.TrimSpace(cur))
		if money.GetCurrency(cur) == nil {
			return fmt.Errorf("invalid currency %q in configuration", cur)
		}
		c.Currencies[i] = cur
	}
	if _, err := c.valuation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) valuation() (folio.Valuation, error) { return folio.ParseValuation(c.Valuation) }

// Debug reports whether debug traces are enabled.
func (c *Config) Debug() bool { return strings.EqualFold(c.LogLevel, "debug") }

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
