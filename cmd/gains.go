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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	pair   string
	detail bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains using FIFO cost basis matching" }
func (*gainsCmd) Usage() string {
	return `ctax gains [-pair <pair>] [-detail]

  Matches every sale against the oldest open buy lots and reports the
  realized gain per pair. With -detail, every partial match is listed.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pair, "pair", "", "Restrict the report to one pair, e.g. BEST_EUR.")
	f.BoolVar(&c.detail, "detail", false, "List every partial FIFO match.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := loadTrades(c.pair)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := cryptotax.RealizedGains(trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing gains: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GainsMarkdown(report, c.detail))
	return subcommands.ExitSuccess
}
