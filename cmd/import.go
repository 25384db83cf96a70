package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/cryptotax/bitpanda"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	apiKey string
	full   bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import account trades from the Bitpanda Exchange API" }
func (*importCmd) Usage() string {
	return `ctax import [-key <api_key>] [-full]

  Fetches account trades, pages through the cursor, and stores them in the
  trade database. By default only trades newer than the latest stored trade
  are requested; -full re-fetches the whole history (already stored trades
  are ignored, not duplicated).
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKey, "key", os.Getenv("BITPANDA_API_KEY"), "Bitpanda Exchange API key. Defaults to $BITPANDA_API_KEY.")
	f.BoolVar(&c.full, "full", false, "Fetch the full history instead of resuming from the latest stored trade.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing API key: pass -key or set BITPANDA_API_KEY")
		return subcommands.ExitUsageError
	}

	db, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	var from, to time.Time
	if !c.full {
		latest, ok, err := db.Latest()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading latest trade: %v\n", err)
			return subcommands.ExitFailure
		}
		if ok {
			from = latest.Time
			to = time.Now()
		}
	}

	client := &bitpanda.Client{APIKey: c.apiKey}
	trades, err := client.Trades(from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching trades: %v\n", err)
		return subcommands.ExitFailure
	}

	inserted, err := db.Insert(trades...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error storing trades: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d trades, stored %d new ones.\n", len(trades), inserted)
	return subcommands.ExitSuccess
}
