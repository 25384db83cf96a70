package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "net holdings per currency implied by the history" }
func (*balancesCmd) Usage() string {
	return `ctax balances

  Derives the running balance of every currency from the full trade history,
  preferential fees deducted from their discount currency. A balance below
  zero is reported as a warning, it usually means the history is incomplete.
`
}

func (*balancesCmd) SetFlags(*flag.FlagSet) {}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := loadTrades("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := cryptotax.Balances(trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BalancesMarkdown(report))
	return subcommands.ExitSuccess
}
