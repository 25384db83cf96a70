package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/bitpanda"
	"github.com/google/subcommands"
)

type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "latest traded price of a pair" }
func (*priceCmd) Usage() string {
	return `ctax price <pair>

  Fetches the latest traded price of a pair from the public market ticker.

Usage Examples:
$ ctax price BEST_EUR
`
}

func (*priceCmd) SetFlags(*flag.FlagSet) {}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one pair, e.g. BEST_EUR")
		return subcommands.ExitUsageError
	}
	pair, err := cryptotax.ParsePair(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	client := &bitpanda.Client{}
	price, err := client.LatestPrice(pair)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching price: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s last: %s\n", pair, price)
	return subcommands.ExitSuccess
}
