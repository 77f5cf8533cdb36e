// Package cmd implements the CLI application to track a stock portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/config"
	"github.com/etnz/stocks/eodhd"
	"github.com/etnz/stocks/gemini"
	"github.com/etnz/stocks/logger"
	"github.com/etnz/stocks/sqlite"
	"github.com/etnz/stocks/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range commands() {
		for _, cmd := range group.commands {
			c.Register(cmd, group.name)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "stocks.yaml", "Path to the configuration file (YAML)")
var Verbose = flag.Bool("v", false, "Log debug messages")

// loadConfig loads the configuration and the logger it describes.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	lc := logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}
	if *Verbose {
		lc.Level = "debug"
	}
	stocks.DisplayCurrency = strings.ToUpper(cfg.Currency)
	return cfg, logger.New(lc), nil
}

// app is the tracker and the resources it holds for the duration of a command.
type app struct {
	tracker *stocks.Tracker
	closers []func() error
}

// Close releases the resources of the app.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing: %v\n", err)
		}
	}
}

// openStore opens the ledger storage selected by the configuration.
func openStore(cfg *config.Config) (stocks.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.Ledger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return stocks.NewFileStore(cfg.Ledger), func() error { return nil }, nil
	}
}

// newProvider returns the price feed and the resolver of the configured provider.
//
// When a Gemini key is configured, company names the provider cannot resolve are
// submitted to Gemini.
func newProvider(ctx context.Context, cfg *config.Config, log zerolog.Logger) (stocks.PriceFeed, stocks.Resolver, error) {
	var feed stocks.PriceFeed
	var chain stocks.ResolverChain
	switch cfg.Provider {
	case config.ProviderEODHD:
		var opts []eodhd.Option
		if cfg.EODHD.CacheDir != "" {
			opts = append(opts, eodhd.WithCacheDir(cfg.EODHD.CacheDir))
		}
		c := eodhd.New(cfg.EODHD.APIKey, log, opts...)
		feed = c
		chain = append(chain, c)
	default:
		feed = yahoo.NewFeed(log)
		chain = append(chain, yahoo.NewResolver(log))
	}

	if cfg.Gemini.APIKey != "" {
		g, err := gemini.New(ctx, cfg.Gemini.APIKey, log)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create gemini resolver: %w", err)
		}
		chain = append(chain, g)
	}
	return feed, chain, nil
}

// openApp loads the configuration and opens the tracker it describes. opts
// take precedence over the configuration. The caller must Close the app.
func openApp(ctx context.Context, opts ...stocks.Option) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration %q: %w", *configFile, err)
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", cfg.Ledger, err)
	}
	feed, resolver, err := newProvider(ctx, cfg, log)
	if err != nil {
		closeStore()
		return nil, err
	}
	log.Debug().Str("store", cfg.Store).Str("provider", cfg.Provider).Str("ledger", cfg.Ledger).Msg("configuration loaded")
	return &app{
		tracker: stocks.Open(store, feed, resolver, log, append([]stocks.Option{stocks.WithBenchmark(cfg.Benchmark)}, opts...)...),
		closers: []func() error{closeStore},
	}, nil
}

// warn prints an advisory error. The command still succeeds.
func warn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
