package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/config"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfig points the global -config flag to a fresh configuration with a
// JSON ledger in a temporary directory, and returns the ledger path.
func useConfig(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"STOCKS_LEDGER", "STOCKS_STORE", "STOCKS_PROVIDER", "STOCKS_BENCHMARK", "EODHD_API_KEY", "GEMINI_API_KEY", "LOG_LEVEL", "LOG_PRETTY"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	ledger := filepath.Join(dir, "portfolio.json")
	path := filepath.Join(dir, "stocks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger: "+ledger+"\nlog:\n  level: error\n"), 0644))

	old := *configFile
	t.Cleanup(func() { *configFile = old })
	*configFile = path
	return ledger
}

func run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("pcs", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "pcs")
	Register(commander)
	require.NoError(t, fs.Parse(args))
	return commander.Execute(context.Background())
}

func TestAdd_UsageErrors(t *testing.T) {
	useConfig(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no company", []string{"add", "-q", "1", "-p", "10"}},
		{"bad quantity", []string{"add", "-q", "ten", "-p", "10", "AAPL"}},
		{"bad price", []string{"add", "-q", "1", "-p", "", "AAPL"}},
		{"zero quantity", []string{"add", "-q", "0", "-p", "10", "AAPL"}},
		{"negative price", []string{"add", "-q", "1", "-p", "-10", "AAPL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, subcommands.ExitUsageError, run(t, tt.args...))
		})
	}
}

func TestRemove_NotFound(t *testing.T) {
	ledger := useConfig(t)
	assert.Equal(t, subcommands.ExitSuccess, run(t, "remove", "aapl"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, "remove"))

	_, err := os.Stat(ledger)
	assert.True(t, os.IsNotExist(err), "nothing to save")
}

func TestRemove(t *testing.T) {
	ledger := useConfig(t)
	l := stocks.NewLedger()
	_, err := l.MergeLot("AAPL", stocks.Q(10), stocks.M(150))
	require.NoError(t, err)
	require.NoError(t, stocks.NewFileStore(ledger).Save(l))

	assert.Equal(t, subcommands.ExitSuccess, run(t, "remove", "aapl"))

	l, err = stocks.NewFileStore(ledger).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestHolding_HTML(t *testing.T) {
	useConfig(t)
	out := filepath.Join(t.TempDir(), "holding.html")

	require.Equal(t, subcommands.ExitSuccess, run(t, "holding", "-html", out))

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Holdings</title>")
	assert.Contains(t, string(page), "No positions yet.")
}

func TestPeriod_UsageError(t *testing.T) {
	useConfig(t)
	assert.Equal(t, subcommands.ExitUsageError, run(t, "performance", "-period", "2w"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, "compare", "-period", "forever"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, "history", "-period", "1y"))
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Ledger = filepath.Join(dir, "portfolio.json")
	s, closeStore, err := openStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &stocks.FileStore{}, s)
	assert.NoError(t, closeStore())

	cfg.Store = config.StoreSQLite
	cfg.Ledger = filepath.Join(dir, "portfolio.db")
	s, closeStore, err = openStore(cfg)
	require.NoError(t, err)
	l, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.NoError(t, closeStore())
}

func TestCompletion(t *testing.T) {
	c := Completion()

	assert.Contains(t, c.Flags, "config")
	require.Contains(t, c.Sub, "add")
	assert.Contains(t, c.Sub["add"].Flags, "q")
	assert.Contains(t, c.Sub["add"].Flags, "p")
	require.Contains(t, c.Sub, "compare")
	assert.Equal(t, stocks.LookbackNames(), c.Sub["compare"].Flags["period"].Predict(""))
	assert.NotNil(t, c.Sub["history"].Args)
	assert.Nil(t, c.Flags["v"], "boolean flags take no value")
}

func TestHeldTickers(t *testing.T) {
	ledger := useConfig(t)
	l := stocks.NewLedger()
	_, err := l.MergeLot("MSFT", stocks.Q(1), stocks.M(300))
	require.NoError(t, err)
	_, err = l.MergeLot("AAPL", stocks.Q(1), stocks.M(150))
	require.NoError(t, err)
	require.NoError(t, stocks.NewFileStore(ledger).Save(l))

	assert.Equal(t, []string{"AAPL", "MSFT"}, heldTickers(""))
}

func TestAddCommand(t *testing.T) {
	assert.Equal(t, "pcs add -q <quantity> -p <price> AAPL", addCommand("AAPL"))
}

func TestTopic(t *testing.T) {
	assert.Equal(t, subcommands.ExitSuccess, run(t, "topic"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, "topic", "periods", "reports"))
	assert.Equal(t, subcommands.ExitFailure, run(t, "topic", "nope"))
}
