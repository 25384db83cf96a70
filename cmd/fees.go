package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/google/subcommands"
)

type feesCmd struct{}

func (*feesCmd) Name() string     { return "fees" }
func (*feesCmd) Synopsis() string { return "total of preferential (discount-token) fees" }
func (*feesCmd) Usage() string {
	return `ctax fees

  Sums all fees that were paid from the discount token balance instead of
  the trades' natural side.
`
}

func (*feesCmd) SetFlags(*flag.FlagSet) {}

func (c *feesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := loadTrades("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	total, err := cryptotax.PreferentialFeeTotal(trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing fee total: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Preferential fees: %s\n", total)
	return subcommands.ExitSuccess
}
