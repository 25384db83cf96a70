package cryptotax

import (
	"iter"
	"sort"
)

// TradeSource provides the full trade history in ascending timestamp order.
// The store package implements it on top of SQLite; tests implement it with a
// plain slice.
type TradeSource interface {
	Trades() ([]Trade, error)
}

// Ledger holds the trade history.
//
// In a Ledger trades are always in chronological order; trades with equal
// timestamps keep their insertion order, so the matcher sees them in the order
// the exchange reported them.
type Ledger struct {
	trades []Trade
	ids    map[string]bool
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ids: make(map[string]bool)}
}

// Append adds trades to the ledger, skipping any trade whose ID is already
// present, and restores chronological order. Deduplication by ID gives the
// same semantics as the store's INSERT OR IGNORE, so importing overlapping
// pages is harmless.
func (l *Ledger) Append(trades ...Trade) {
	for _, t := range trades {
		if t.ID != "" && l.ids[t.ID] {
			continue
		}
		l.ids[t.ID] = true
		l.trades = append(l.trades, t)
	}
	// stable: equal timestamps keep input order.
	sort.SliceStable(l.trades, func(i, j int) bool {
		return l.trades[i].Time.Before(l.trades[j].Time)
	})
}

// Trades returns the trades in chronological order. It implements TradeSource.
func (l *Ledger) Trades() ([]Trade, error) {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out, nil
}

// All iterates over the trades in chronological order.
func (l *Ledger) All() iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range l.trades {
			if !yield(t) {
				return
			}
		}
	}
}

// Len returns the number of trades in the ledger.
func (l *Ledger) Len() int { return len(l.trades) }

// Pairs returns the distinct pairs traded, in first-seen order.
func (l *Ledger) Pairs() []Pair {
	seen := make(map[Pair]bool)
	var pairs []Pair
	for _, t := range l.trades {
		if !seen[t.Pair] {
			seen[t.Pair] = true
			pairs = append(pairs, t.Pair)
		}
	}
	return pairs
}
