// Package cmd implements the ctax CLI to reconcile exchange trades into
// realized gains and balances.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/store"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", "transactions.db", "Path to the SQLite trade database")

var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&importCmd{}, "exchange"},
	{&priceCmd{}, "exchange"},
	{&gainsCmd{}, "reports"},
	{&balancesCmd{}, "reports"},
	{&feesCmd{}, "reports"},
	{&tradesCmd{}, "reports"},
	{&exportCmd{}, "data"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, entry := range commands {
		c.Register(entry.cmd, entry.group)
	}
}

// Names returns the registered subcommand names, for shell completion.
func Names() []string {
	names := make([]string, 0, len(commands))
	for _, entry := range commands {
		names = append(names, entry.cmd.Name())
	}
	return names
}

// openStore opens the app trade database.
func openStore() (*store.DB, error) {
	db, err := store.Open(*dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open trade database %q: %w", *dbPath, err)
	}
	return db, nil
}

// loadTrades reads the full ordered history from the app trade database,
// optionally restricted to one pair. Matching per pair is independent, so a
// filtered history computes the same gains for that pair as the full one.
func loadTrades(pairFilter string) ([]cryptotax.Trade, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	trades, err := db.Trades()
	if err != nil {
		return nil, fmt.Errorf("could not read trades from %q: %w", *dbPath, err)
	}
	if pairFilter == "" {
		return trades, nil
	}

	pair, err := cryptotax.ParsePair(pairFilter)
	if err != nil {
		return nil, err
	}
	filtered := trades[:0]
	for _, t := range trades {
		if t.Pair == pair {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown, still perfectly readable.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
