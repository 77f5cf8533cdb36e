package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
)

type compareCmd struct {
	period    string
	benchmark string
	html      string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the portfolio with a benchmark" }
func (*compareCmd) Usage() string {
	return `pcs compare [-period <period>] [-benchmark <ticker>] [-html <file>]

  Compares the portfolio performance with the benchmark (by default the one
  configured, SPY otherwise). Both series are rescaled to start at 100.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", stocks.DefaultLookback, periodUsage)
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark ticker, overrides the configuration")
	f.StringVar(&c.html, "html", "", "Write the report as an HTML page to this file")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lb, err := stocks.ParseLookback(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx, stocks.WithBenchmark(c.benchmark))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	cmp, err := a.tracker.Compare(ctx, lb)
	warn(err)

	md := renderer.RenderComparison(renderer.NewComparison(cmp, lb))
	return writeReport("Portfolio vs "+cmp.Symbol, md, c.html)
}
