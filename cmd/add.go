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

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	quantity string
	price    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record the purchase of a stock" }
func (*addCmd) Usage() string {
	return `pcs add -q <quantity> -p <price> <company or ticker>

  Records a purchase of <quantity> shares at <price> per share.

  The company is resolved to its ticker by the configured provider. Buying a
  stock already held merges the lot into the position at the weighted average
  cost. Quantities are kept to 4 decimals and prices to cents.

Usage Examples:
$ pcs add -q 10 -p 150 Apple
$ pcs add -q 0.5 -p 2800.25 GOOG
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "Number of shares bought")
	f.StringVar(&c.price, "p", "", "Price paid per share")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(os.Stderr, "Error: a company name or ticker is required.")
		return subcommands.ExitUsageError
	}
	quantity, err := stocks.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	price, err := stocks.ParseMoney(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	pos, err := a.tracker.AddLot(ctx, name, quantity, price)
	if errors.Is(err, stocks.ErrInvalidInput) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s: %v shares at an average cost of %v\n", pos.Ticker, pos.Quantity, pos.AverageCost)
	return subcommands.ExitSuccess
}
