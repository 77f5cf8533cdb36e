package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocks"
	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a position from the portfolio" }
func (*removeCmd) Usage() string {
	return `pcs remove <ticker>

  Removes the whole position of <ticker> from the portfolio.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required.")
		return subcommands.ExitUsageError
	}
	ticker := stocks.CanonicalTicker(f.Arg(0))

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	err = a.tracker.RemovePosition(ticker)
	if errors.Is(err, stocks.ErrNotFound) {
		fmt.Printf("%s not found in the portfolio, nothing removed.\n", ticker)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", ticker, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s removed.\n", ticker)
	return subcommands.ExitSuccess
}
