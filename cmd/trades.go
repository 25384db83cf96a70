package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct {
	pair string
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "chronological log of the stored trades" }
func (*tradesCmd) Usage() string {
	return `ctax trades [-pair <pair>]

  Prints the stored trade history in chronological order.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pair, "pair", "", "Restrict the log to one pair, e.g. BEST_EUR.")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := loadTrades(c.pair)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TradesMarkdown(trades))
	return subcommands.ExitSuccess
}
