// Package renderer formats reports as markdown.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/cryptotax"
)

// GainsMarkdown renders a realized gains report. With detail, every partial
// FIFO match is listed under its pair.
func GainsMarkdown(report *cryptotax.GainsReport, detail bool) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Realized Gains (FIFO)\n\n")

	fmt.Fprint(&b, "## Gains per Pair\n\n")
	fmt.Fprintln(&b, "| Pair | Realized | Matched | Open |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, pg := range report.Pairs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			pg.Pair,
			pg.Realized.SignedString(),
			pg.Matched,
			pg.Open,
		)
	}
	for _, total := range report.Total {
		fmt.Fprintf(&b, "| **Total %s** | **%s** | | |\n", total.Currency(), total.SignedString())
	}

	if detail && len(report.Matches) > 0 {
		fmt.Fprint(&b, "\n## Matches\n\n")
		fmt.Fprintln(&b, "| Pair | Consumed | Bought | Sold | Fee | Gain |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
		for _, m := range report.Matches {
			fmt.Fprintf(&b, "| %s | %s | %s @ %s | %s @ %s | %s | %s |\n",
				m.Pair,
				m.Consumed,
				m.BuyTime.Format("2006-01-02"), m.BuyPrice,
				m.SellTime.Format("2006-01-02"), m.SellPrice,
				m.Fee,
				m.Gain.SignedString(),
			)
		}
	}

	return b.String()
}

// BalancesMarkdown renders the per-currency balances implied by the history.
func BalancesMarkdown(report *cryptotax.BalanceReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Balances\n\n")
	fmt.Fprintln(&b, "| Currency | Balance |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, currency := range report.Currencies() {
		fmt.Fprintf(&b, "| %s | %s |\n", currency, report.Balance(currency))
	}

	if !report.PreferentialFees.IsZero() {
		fmt.Fprintf(&b, "\nPreferential fees deducted: %s\n", report.PreferentialFees)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprint(&b, "\n## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// TradesMarkdown renders the chronological trade log.
func TradesMarkdown(trades []cryptotax.Trade) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Trades\n\n")
	fmt.Fprintln(&b, "| Time | Pair | Side | Amount | Price | Fee |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, t := range trades {
		fee := ""
		if !t.Fee.IsZero() {
			fee = fmt.Sprintf("%s %s", t.Fee, t.FeeCurrency)
			if t.Preferential {
				fee += " (BEST)"
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Time.Format(time.RFC3339),
			t.Pair,
			t.Side,
			t.Amount,
			t.Price,
			fee,
		)
	}

	return b.String()
}
