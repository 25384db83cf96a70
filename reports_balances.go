package cryptotax

import (
	"log"
	"sort"

	"github.com/shopspring/decimal"
)

// BalanceReport contains the net holdings implied by the full trade history.
type BalanceReport struct {
	// Balances maps a currency to its net holding: the sum of base deltas of
	// trades with that base currency plus quote deltas of trades with that
	// quote currency, minus preferential fees charged in that currency.
	Balances map[string]Quantity

	// PreferentialFees is the total of all fees paid from discount-token
	// balances, across fee currencies.
	PreferentialFees Quantity

	// Warnings records every trade that left a running balance negative.
	// A negative balance hints at missing history, not a structural defect,
	// so the rest of the report is still produced.
	Warnings []NegativeBalanceWarning
}

// Balance returns the net holding of a currency, zero if never traded.
func (r *BalanceReport) Balance(currency string) Quantity {
	return r.Balances[currency]
}

// Currencies returns the currencies with a recorded balance, sorted.
func (r *BalanceReport) Currencies() []string {
	out := make([]string, 0, len(r.Balances))
	for c := range r.Balances {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Balances derives the running per-currency balances from the full trade
// history in one forward pass. The trades must be in ascending timestamp
// order. Preferential fees are deducted from the balance of their fee
// currency as they occur.
func Balances(trades []Trade) (*BalanceReport, error) {
	report := &BalanceReport{Balances: make(map[string]Quantity)}

	apply := func(t Trade, currency string, delta Quantity) {
		before := report.Balances[currency]
		after := before.Add(delta)
		report.Balances[currency] = after
		if after.IsNegative() && !before.IsNegative() {
			w := NegativeBalanceWarning{Currency: currency, Balance: after, TradeID: t.ID}
			report.Warnings = append(report.Warnings, w)
			log.Printf("warning: %s", w)
		}
	}

	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		apply(t, t.BaseCurrency(), t.BaseDelta())
		apply(t, t.QuoteCurrency(), Q(t.QuoteDelta().value))
		if t.Preferential && !t.Fee.IsZero() {
			apply(t, t.FeeCurrency, t.Fee.Neg())
			report.PreferentialFees = report.PreferentialFees.Add(t.Fee)
		}
	}
	return report, nil
}

// PreferentialFeeTotal sums all fees collected under the preferential flag.
func PreferentialFeeTotal(trades []Trade) (Quantity, error) {
	total := Q(decimal.Zero)
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return Quantity{}, err
		}
		if t.Preferential {
			total = total.Add(t.Fee)
		}
	}
	return total, nil
}
