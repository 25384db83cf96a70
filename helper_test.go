package cryptotax

import (
	"fmt"
	"time"
)

var (
	bestEUR = Pair{Base: "BEST", Quote: "EUR"}
	panEUR  = Pair{Base: "PAN", Quote: "EUR"}
	btcUSD  = Pair{Base: "BTC", Quote: "USD"}
)

// day is a helper for tests to create a timestamp on a given day of January 2021.
func day(d int) time.Time {
	return time.Date(2021, time.January, d, 10, 0, 0, 0, time.UTC)
}

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

var nextID int

// trade is a helper for tests to create a feeless trade on a given day.
func trade(side Side, p Pair, amount, price float64, d int) Trade {
	nextID++
	return Trade{
		ID:     fmt.Sprintf("t-%d", nextID),
		Pair:   p,
		Side:   side,
		Amount: Q(amount),
		Price:  M(price, p.Quote),
		Time:   day(d),
	}
}

// withFee is a helper for tests to attach a fee to a trade.
func withFee(t Trade, fee float64, currency string, preferential bool) Trade {
	t.Fee = Q(fee)
	t.FeeCurrency = currency
	t.Preferential = preferential
	return t
}
