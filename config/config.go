// Package config loads the pcs configuration from a YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Price providers.
const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"
)

// Config holds the application configuration.
type Config struct {
	Ledger    string    `yaml:"ledger"`    // path of the portfolio file or database
	Store     string    `yaml:"store"`     // "json" or "sqlite"
	Provider  string    `yaml:"provider"`  // "yahoo" or "eodhd"
	Benchmark string    `yaml:"benchmark"` // ticker compared with the portfolio
	Currency  string    `yaml:"currency"`  // display currency code
	EODHD     EODHD     `yaml:"eodhd"`
	Gemini    Gemini    `yaml:"gemini"`
	Log       LogConfig `yaml:"log"`
}

// EODHD configures the EOD Historical Data provider.
type EODHD struct {
	APIKey   string `yaml:"api_key"`
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// Gemini configures the Gemini resolver. It is disabled without an API key.
type Gemini struct {
	APIKey string `yaml:"api_key"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Ledger:    "portfolio.json",
		Store:     StoreJSON,
		Provider:  ProviderYahoo,
		Benchmark: "SPY",
		Currency:  "USD",
		Log:       LogConfig{Level: "info", Pretty: true},
	}
}

// Load reads the configuration file at path, if it exists, then applies the
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %q: %w", path, err)
			}
		}
	}

	cfg.Ledger = getEnv("STOCKS_LEDGER", cfg.Ledger)
	cfg.Store = strings.ToLower(getEnv("STOCKS_STORE", cfg.Store))
	cfg.Provider = strings.ToLower(getEnv("STOCKS_PROVIDER", cfg.Provider))
	cfg.Benchmark = getEnv("STOCKS_BENCHMARK", cfg.Benchmark)
	cfg.EODHD.APIKey = getEnv("EODHD_API_KEY", cfg.EODHD.APIKey)
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Pretty = getEnvAsBool("LOG_PRETTY", cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Ledger == "" {
		return fmt.Errorf("ledger path is required")
	}
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q, expected %q or %q", c.Store, StoreJSON, StoreSQLite)
	}
	switch c.Provider {
	case ProviderYahoo:
	case ProviderEODHD:
		if c.EODHD.APIKey == "" {
			return fmt.Errorf("provider %q requires an API key: set EODHD_API_KEY", ProviderEODHD)
		}
	default:
		return fmt.Errorf("unknown provider %q, expected %q or %q", c.Provider, ProviderYahoo, ProviderEODHD)
	}
	if c.Benchmark == "" {
		return fmt.Errorf("benchmark is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
