package cryptotax

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GainsReport contains the results of a FIFO realized gains calculation.
type GainsReport struct {
	Pairs   []PairGains
	Matches []Match // every partial match, in processing order
	Total   []Money // realized gain summed per quote currency
}

// PairGains holds the realized gain of a single pair, in its quote currency.
type PairGains struct {
	Pair     Pair
	Realized Money
	Matched  Quantity // base volume consumed by sells
	Open     Quantity // base volume still held in open lots
}

// RealizedGains computes the realized gains of the full trade history using
// FIFO cost basis matching. The trades must be in ascending timestamp order.
//
// The gain of each partial match is proceeds minus cost basis minus the
// prorated sell fee, in the pair's quote currency. The report total is kept
// per quote currency, so histories mixing, say, EUR and USD quoted pairs
// never add apples to oranges.
func RealizedGains(trades []Trade) (*GainsReport, error) {
	matches, open, err := matchFIFO(trades)
	if err != nil {
		return nil, err
	}

	report := &GainsReport{Matches: matches}

	perPair := make(map[Pair]decimal.Decimal)
	matched := make(map[Pair]decimal.Decimal)
	for _, m := range matches {
		perPair[m.Pair] = perPair[m.Pair].Add(m.Gain.value)
		matched[m.Pair] = matched[m.Pair].Add(m.Consumed.value)
	}

	// Pairs with only buys still show up, with a zero realized gain.
	remaining := make(map[Pair]decimal.Decimal)
	for pair, q := range open {
		for _, lot := range q {
			remaining[pair] = remaining[pair].Add(lot.remaining.value)
		}
	}

	pairs := make(map[Pair]bool)
	for pair := range perPair {
		pairs[pair] = true
	}
	for pair := range remaining {
		pairs[pair] = true
	}

	totals := make(map[string]decimal.Decimal)
	for pair := range pairs {
		report.Pairs = append(report.Pairs, PairGains{
			Pair:     pair,
			Realized: M(perPair[pair], pair.Quote),
			Matched:  Q(matched[pair]),
			Open:     Q(remaining[pair]),
		})
		totals[pair.Quote] = totals[pair.Quote].Add(perPair[pair])
	}
	sort.Slice(report.Pairs, func(i, j int) bool {
		return report.Pairs[i].Pair.String() < report.Pairs[j].Pair.String()
	})

	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	for _, c := range currencies {
		report.Total = append(report.Total, M(totals[c], c))
	}

	return report, nil
}

// Realized returns the total realized gain in the given quote currency.
func (r *GainsReport) Realized(currency string) Money {
	for _, m := range r.Total {
		if m.Currency() == currency {
			return m
		}
	}
	return M(decimal.Zero, currency)
}
