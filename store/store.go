// Package store persists the trade history in a local SQLite database.
//
// Decimals are stored as TEXT so no precision is lost, and timestamps are
// stored as RFC3339 UTC strings so their lexical order is their chronological
// order. Inserts use INSERT OR IGNORE keyed on the trade ID, so re-importing
// overlapping pages from the exchange is harmless.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/etnz/cryptotax"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	pair TEXT NOT NULL,
	side TEXT NOT NULL,
	amount TEXT NOT NULL,
	price TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	fee TEXT NOT NULL,
	fee_currency TEXT NOT NULL,
	preferential INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades(timestamp);
`

// DB is a SQLite-backed trade store. It implements cryptotax.TradeSource.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the trade database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (s *DB) Close() error { return s.db.Close() }

// Insert stores trades, silently skipping IDs already present.
// It returns the number of newly inserted trades.
func (s *DB) Insert(trades ...cryptotax.Trade) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO trades
		(id, pair, side, amount, price, timestamp, fee, fee_currency, preferential)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return inserted, err
		}
		res, err := stmt.Exec(
			t.ID, t.Pair.String(), string(t.Side),
			t.Amount.String(), t.Price.Decimal().String(),
			t.Time.UTC().Format(time.RFC3339Nano),
			t.Fee.String(), t.FeeCurrency, t.Preferential,
		)
		if err != nil {
			return inserted, fmt.Errorf("could not insert trade %q: %w", t.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, tx.Commit()
}

// Trades returns the full history in ascending timestamp order.
func (s *DB) Trades() ([]cryptotax.Trade, error) {
	rows, err := s.db.Query(`
		SELECT id, pair, side, amount, price, timestamp, fee, fee_currency, preferential
		FROM trades ORDER BY timestamp, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []cryptotax.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// Latest returns the most recent trade, to resume an incremental import from.
// ok is false when the store is empty.
func (s *DB) Latest() (t cryptotax.Trade, ok bool, err error) {
	rows, err := s.db.Query(`
		SELECT id, pair, side, amount, price, timestamp, fee, fee_currency, preferential
		FROM trades ORDER BY timestamp DESC, rowid DESC LIMIT 1`)
	if err != nil {
		return cryptotax.Trade{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return cryptotax.Trade{}, false, rows.Err()
	}
	t, err = scanTrade(rows)
	if err != nil {
		return cryptotax.Trade{}, false, err
	}
	return t, true, rows.Err()
}

// Count returns the number of stored trades.
func (s *DB) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&n)
	return n, err
}

func scanTrade(rows *sql.Rows) (cryptotax.Trade, error) {
	var id, pairCode, side, amount, price, timestamp, fee, feeCurrency string
	var preferential bool
	if err := rows.Scan(&id, &pairCode, &side, &amount, &price, &timestamp, &fee, &feeCurrency, &preferential); err != nil {
		return cryptotax.Trade{}, err
	}

	pair, err := cryptotax.ParsePair(pairCode)
	if err != nil {
		return cryptotax.Trade{}, fmt.Errorf("corrupt row %q: %w", id, err)
	}
	when, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return cryptotax.Trade{}, fmt.Errorf("corrupt row %q: %w", id, err)
	}
	amountD, err := decimal.NewFromString(amount)
	if err != nil {
		return cryptotax.Trade{}, fmt.Errorf("corrupt row %q: %w", id, err)
	}
	priceD, err := decimal.NewFromString(price)
	if err != nil {
		return cryptotax.Trade{}, fmt.Errorf("corrupt row %q: %w", id, err)
	}
	feeD, err := decimal.NewFromString(fee)
	if err != nil {
		return cryptotax.Trade{}, fmt.Errorf("corrupt row %q: %w", id, err)
	}

	return cryptotax.Trade{
		ID:           id,
		Pair:         pair,
		Side:         cryptotax.Side(side),
		Amount:       cryptotax.Q(amountD),
		Price:        cryptotax.M(priceD, pair.Quote),
		Time:         when,
		Fee:          cryptotax.Q(feeD),
		FeeCurrency:  feeCurrency,
		Preferential: preferential,
	}, nil
}
