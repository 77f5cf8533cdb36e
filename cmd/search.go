package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stocks"
	"github.com/google/subcommands"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find the ticker of a company" }
func (*searchCmd) Usage() string {
	return `pcs search <company or ticker>

  Resolves a company name to its ticker, and prints a ready-to-use 'add' command.
  The portfolio is not changed.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ticker, err := a.tracker.Resolve(ctx, term)
	if errors.Is(err, stocks.ErrResolution) {
		fmt.Printf("No ticker found for '%s'.\n", term)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching %q: %v\n", term, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s\n    $ %s\n", ticker, addCommand(ticker))
	return subcommands.ExitSuccess
}

// addCommand returns the 'add' command line to buy ticker.
func addCommand(ticker string) string {
	return fmt.Sprintf("pcs add -q <quantity> -p <price> %s", ticker)
}
