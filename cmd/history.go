package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	period string
	html   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the price history of a stock" }
func (*historyCmd) Usage() string {
	return `pcs history [-period <period>] [-html <file>] <ticker>

  Displays the close prices of <ticker> over the period. The ticker does not
  need to be held.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", stocks.DefaultLookback, periodUsage)
	f.StringVar(&c.html, "html", "", "Write the report as an HTML page to this file")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required.")
		return subcommands.ExitUsageError
	}
	lb, err := stocks.ParseLookback(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ticker := stocks.CanonicalTicker(f.Arg(0))
	s, err := a.tracker.PriceHistory(ctx, ticker, lb)
	if err != nil && !errors.Is(err, stocks.ErrPriceUnavailable) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	warn(err)

	md := renderer.RenderSeries(renderer.NewPriceHistory(ticker, s, lb))
	return writeReport(ticker+" price history", md, c.html)
}
