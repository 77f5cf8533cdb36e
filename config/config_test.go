package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv neutralizes the overrides possibly set on the machine running the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STOCKS_LEDGER", "STOCKS_STORE", "STOCKS_PROVIDER", "STOCKS_BENCHMARK", "EODHD_API_KEY", "GEMINI_API_KEY", "LOG_LEVEL", "LOG_PRETTY"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "portfolio.json", cfg.Ledger)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.Equal(t, ProviderYahoo, cfg.Provider)
	assert.Equal(t, "SPY", cfg.Benchmark)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
ledger: data/stocks.db
store: sqlite
provider: eodhd
benchmark: QQQ
eodhd:
  api_key: from-file
  cache_dir: /tmp/eodhd
log:
  level: debug
  pretty: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/stocks.db", cfg.Ledger)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, ProviderEODHD, cfg.Provider)
	assert.Equal(t, "QQQ", cfg.Benchmark)
	assert.Equal(t, "from-file", cfg.EODHD.APIKey)
	assert.Equal(t, "/tmp/eodhd", cfg.EODHD.CacheDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, "USD", cfg.Currency, "unset keys keep their default")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "provider: eodhd\neodhd:\n  api_key: from-file\n")
	t.Setenv("EODHD_API_KEY", "from-env")
	t.Setenv("STOCKS_PROVIDER", "YAHOO")
	t.Setenv("STOCKS_LEDGER", "other.json")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderYahoo, cfg.Provider)
	assert.Equal(t, "from-env", cfg.EODHD.APIKey)
	assert.Equal(t, "other.json", cfg.Ledger)
	assert.Equal(t, "g", cfg.Gemini.APIKey)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_Malformed(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "ledger: [unclosed"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{"valid config", func(*Config) {}, false, ""},
		{"missing ledger", func(c *Config) { c.Ledger = "" }, true, "ledger path is required"},
		{"unknown store", func(c *Config) { c.Store = "csv" }, true, "unknown store"},
		{"unknown provider", func(c *Config) { c.Provider = "bloomberg" }, true, "unknown provider"},
		{"eodhd without key", func(c *Config) { c.Provider = ProviderEODHD }, true, "EODHD_API_KEY"},
		{"eodhd with key", func(c *Config) { c.Provider = ProviderEODHD; c.EODHD.APIKey = "k" }, false, ""},
		{"missing benchmark", func(c *Config) { c.Benchmark = "" }, true, "benchmark is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}
