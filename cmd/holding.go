package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	html string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the portfolio valued at the latest prices" }
func (*holdingCmd) Usage() string {
	return `pcs holding [-html <file>]

  Displays every position valued at the latest price: quantity, average cost,
  current price, total cost, current value, profit or loss and percent change,
  followed by the TOTAL row and the allocation of the portfolio.

  A position without a price is shown as N/A and valued at 0.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.html, "html", "", "Write the report as an HTML page to this file")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	v, err := a.tracker.Valuation(ctx)
	warn(err)

	return writeReport("Holdings", renderer.RenderHolding(renderer.NewHolding(v)), c.html)
}
