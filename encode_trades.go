package cryptotax

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains code to persist the trade history as JSONL, one trade
// per line, in a way that is human-readable and git-friendly. It is the
// import/export alternative to the SQLite store.

// jtrade is the wire representation of one trade.
type jtrade struct {
	ID           string          `json:"id"`
	Pair         Pair            `json:"pair"`
	Side         Side            `json:"side"`
	Time         time.Time       `json:"time"`
	Amount       decimal.Decimal `json:"amount"`
	Price        decimal.Decimal `json:"price"`
	Fee          decimal.Decimal `json:"fee"`
	FeeCurrency  string          `json:"feeCurrency"`
	Preferential bool            `json:"preferential"`
}

// EncodeTrades writes trades as JSONL with a stable field order.
func EncodeTrades(w io.Writer, trades ...Trade) error {
	for _, t := range trades {
		var jw jsonObjectWriter
		jw.Append("id", t.ID)
		jw.Append("pair", t.Pair)
		jw.Append("side", t.Side)
		jw.Append("time", t.Time.Format(time.RFC3339))
		jw.Append("amount", t.Amount)
		jw.Append("price", t.Price.value)
		jw.Optional("fee", t.Fee)
		jw.Optional("feeCurrency", t.FeeCurrency)
		jw.Optional("preferential", t.Preferential)

		line, err := jw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("could not encode trade %q: %w", t.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTrades reads a JSONL stream of trades and returns a sorted Ledger.
// Each trade is validated on the way in.
func DecodeTrades(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var jt jtrade
		if err := json.Unmarshal(lineBytes, &jt); err != nil {
			return nil, fmt.Errorf("format error in line %q: %w", string(lineBytes), err)
		}

		t := Trade{
			ID:           jt.ID,
			Pair:         jt.Pair,
			Side:         jt.Side,
			Time:         jt.Time,
			Amount:       Q(jt.Amount),
			Price:        M(jt.Price, jt.Pair.Quote),
			Fee:          Q(jt.Fee),
			FeeCurrency:  jt.FeeCurrency,
			Preferential: jt.Preferential,
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		ledger.Append(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}
