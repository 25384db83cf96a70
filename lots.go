package cryptotax

import (
	"time"

	"github.com/shopspring/decimal"
)

// openLot is a BUY that still holds unsold volume. It exists only for the
// duration of one matching run; re-running matching rebuilds all queues from
// the full history.
type openLot struct {
	buy       Trade
	remaining Quantity
}

// lotQueue holds the open lots of one pair, oldest first.
type lotQueue []openLot

// Match is one partial FIFO match of a sell against an open buy lot.
type Match struct {
	Pair      Pair
	Consumed  Quantity // base currency volume matched
	BuyPrice  Money
	SellPrice Money
	Fee       Money // the sell fee prorated over this match's volume
	Gain      Money // proceeds - cost - fee, in the quote currency
	BuyTime   time.Time
	SellTime  time.Time
	BuyID     string
	SellID    string
}

// matchFIFO consumes the ordered trade sequence once and matches every SELL
// against the oldest open BUY lots of the same pair. It returns one Match per
// partial consumption, in processing order, and the open lots left per pair.
//
// A standard sell fee is prorated exactly: fee * consumed / amount. The
// proration weights sum to one over the sell's amount, so the prorated parts
// of one sell reproduce its total fee exactly.
func matchFIFO(trades []Trade) ([]Match, map[Pair]lotQueue, error) {
	queues := make(map[Pair]lotQueue)
	var matches []Match

	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return nil, nil, err
		}

		if !t.IsSale() {
			// The queue for a pair is created lazily on its first BUY.
			// A standard buy fee is charged on the base currency, so the
			// sellable volume of the lot is the net acquired amount. A fee
			// that eats the whole lot leaves nothing to match against.
			if net := t.BaseDelta(); net.IsPositive() {
				queues[t.Pair] = append(queues[t.Pair], openLot{buy: t, remaining: net})
			}
			continue
		}

		q := queues[t.Pair]
		toMatch := t.Amount
		for toMatch.IsPositive() {
			if len(q) == 0 {
				return nil, nil, &InsufficientLotsError{Pair: t.Pair, TradeID: t.ID, Missing: toMatch}
			}
			lot := &q[0]

			consumed := toMatch
			if lot.remaining.LessThan(consumed) {
				consumed = lot.remaining
			}

			fee := M(decimal.Zero, t.Pair.Quote)
			if !t.Preferential && !t.Fee.IsZero() {
				fee = M(consumed.Div(t.Amount).Mul(t.Fee).value, t.Pair.Quote)
			}

			proceeds := t.Price.Mul(consumed)
			cost := lot.buy.Price.Mul(consumed)

			matches = append(matches, Match{
				Pair:      t.Pair,
				Consumed:  consumed,
				BuyPrice:  lot.buy.Price,
				SellPrice: t.Price,
				Fee:       fee,
				Gain:      proceeds.Sub(cost).Sub(fee),
				BuyTime:   lot.buy.Time,
				SellTime:  t.Time,
				BuyID:     lot.buy.ID,
				SellID:    t.ID,
			})

			lot.remaining = lot.remaining.Sub(consumed)
			toMatch = toMatch.Sub(consumed)
			if lot.remaining.IsZero() {
				q = q[1:]
			}
		}
		queues[t.Pair] = q
	}

	// Unconsumed lots are simply still-open positions, not an error.
	return matches, queues, nil
}
