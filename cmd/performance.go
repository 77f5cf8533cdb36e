package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
)

// periodUsage documents the -period flag.
var periodUsage = "Period of the history, one of " + strings.Join(stocks.LookbackNames(), ", ")

type performanceCmd struct {
	period string
	html   string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display the portfolio value over a period" }
func (*performanceCmd) Usage() string {
	return `pcs performance [-period <period>] [-html <file>]

  Displays the value of the portfolio over the period, as if the current
  quantities had been held during the whole period.

  Only the instants where every position has a price are shown.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", stocks.DefaultLookback, periodUsage)
	f.StringVar(&c.html, "html", "", "Write the report as an HTML page to this file")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	s, err := a.tracker.Performance(ctx, lb)
	warn(err)

	return writeReport("Portfolio performance", renderer.RenderSeries(renderer.NewPerformance(s, lb)), c.html)
}
