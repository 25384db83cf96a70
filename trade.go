package cryptotax

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Side identifies the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Pair is a trading instrument: a base currency priced in a quote currency.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair parses an instrument code like "BEST_EUR" into a Pair.
func ParsePair(code string) (Pair, error) {
	base, quote, found := strings.Cut(code, "_")
	if !found || base == "" || quote == "" {
		return Pair{}, fmt.Errorf("invalid instrument code %q: want BASE_QUOTE", code)
	}
	return Pair{Base: base, Quote: quote}, nil
}

func (p Pair) String() string { return p.Base + "_" + p.Quote }

func (p Pair) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

func (p *Pair) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParsePair(code)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Trade is one executed exchange trade. It is an immutable input record:
// everything the reports need is derived from it by pure methods.
type Trade struct {
	ID     string
	Pair   Pair
	Side   Side
	Amount Quantity // quantity of base currency, always positive
	Price  Money    // quote currency per unit of base currency
	Time   time.Time

	// Fee handling follows the exchange's convention: a STANDARD fee is
	// charged on the trade's natural side (base for a BUY, quote for a SELL),
	// a preferential fee is paid from a separate discount-token balance.
	Fee          Quantity
	FeeCurrency  string
	Preferential bool
}

// IsSale reports whether the trade is a SELL.
func (t Trade) IsSale() bool { return t.Side == Sell }

// BaseCurrency returns the base component of the trade's pair.
func (t Trade) BaseCurrency() string { return t.Pair.Base }

// QuoteCurrency returns the quote component of the trade's pair.
func (t Trade) QuoteCurrency() string { return t.Pair.Quote }

// BaseDelta returns the signed change in base currency holdings.
// Positive for a BUY, negative for a SELL. A non-preferential BUY fee is
// charged on the base currency and reduces the acquired amount.
func (t Trade) BaseDelta() Quantity {
	if t.IsSale() {
		return t.Amount.Neg()
	}
	value := t.Amount
	if !t.Preferential {
		value = value.Sub(t.Fee)
	}
	return value
}

// QuoteDelta returns the signed change in quote currency holdings.
// Negative for a BUY, positive for a SELL. A non-preferential SELL fee is
// charged on the quote currency and reduces the proceeds.
func (t Trade) QuoteDelta() Money {
	if !t.IsSale() {
		return t.Price.Mul(t.Amount).Neg()
	}
	value := t.Price.Mul(t.Amount)
	if !t.Preferential {
		value = value.Sub(M(t.Fee.value, t.Pair.Quote))
	}
	return value
}

// Validate checks the record invariants. It returns a *DataIntegrityError on
// the first violation, and never modifies the trade: a fee denominated in an
// unexpected currency is an error, not something to silently correct.
func (t Trade) Validate() error {
	if t.Pair.Base == "" || t.Pair.Quote == "" {
		return &DataIntegrityError{TradeID: t.ID, Reason: fmt.Sprintf("incomplete pair %q", t.Pair)}
	}
	if t.Side != Buy && t.Side != Sell {
		return &DataIntegrityError{TradeID: t.ID, Reason: fmt.Sprintf("unknown side %q", t.Side)}
	}
	if !t.Amount.IsPositive() {
		return &DataIntegrityError{TradeID: t.ID, Reason: fmt.Sprintf("amount %s is not positive", t.Amount)}
	}
	if !t.Price.IsPositive() {
		return &DataIntegrityError{TradeID: t.ID, Reason: fmt.Sprintf("price %s is not positive", t.Price)}
	}
	if t.Fee.IsNegative() {
		return &DataIntegrityError{TradeID: t.ID, Reason: fmt.Sprintf("fee %s is negative", t.Fee)}
	}
	if t.Fee.IsZero() {
		return nil
	}
	if t.FeeCurrency == "" {
		return &DataIntegrityError{TradeID: t.ID, Reason: "fee without a fee currency"}
	}
	if t.Preferential {
		return nil
	}
	// A standard fee must be denominated in the natural currency for its side.
	natural := t.Pair.Base
	if t.IsSale() {
		natural = t.Pair.Quote
	}
	if t.FeeCurrency != natural {
		return &DataIntegrityError{
			TradeID: t.ID,
			Reason:  fmt.Sprintf("standard %s fee in %s, want %s", t.Side, t.FeeCurrency, natural),
		}
	}
	return nil
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade(%s %s %s @ %s, %s)", t.Side, t.Amount, t.Pair, t.Price, t.Time.Format(time.RFC3339))
}
