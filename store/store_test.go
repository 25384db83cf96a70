package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/cryptotax"
)

var bestEUR = cryptotax.Pair{Base: "BEST", Quote: "EUR"}

func testTrade(id string, side cryptotax.Side, amount, price float64, d int) cryptotax.Trade {
	return cryptotax.Trade{
		ID:     id,
		Pair:   bestEUR,
		Side:   side,
		Amount: cryptotax.Q(amount),
		Price:  cryptotax.M(price, "EUR"),
		Time:   time.Date(2021, time.January, d, 10, 0, 0, 0, time.UTC),
	}
}

func open(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_InsertAndTrades(t *testing.T) {
	db := open(t)

	// Insert out of order, read back chronological.
	n, err := db.Insert(
		testTrade("b", cryptotax.Sell, 4, 1.5, 2),
		testTrade("a", cryptotax.Buy, 10, 1.0, 1),
	)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Insert() = %d, want 2", n)
	}

	trades, err := db.Trades()
	if err != nil {
		t.Fatalf("Trades() error = %v", err)
	}
	if len(trades) != 2 || trades[0].ID != "a" || trades[1].ID != "b" {
		t.Fatalf("Trades() not in chronological order: %v", trades)
	}
	if !trades[0].Amount.Equal(cryptotax.Q(10.0)) || !trades[0].Price.Equal(cryptotax.M(1.0, "EUR")) {
		t.Errorf("decimals changed across the store: %v", trades[0])
	}
}

func TestDB_InsertIgnoresDuplicates(t *testing.T) {
	db := open(t)

	first := testTrade("a", cryptotax.Buy, 10, 1.0, 1)
	if _, err := db.Insert(first); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	// Same page fetched again.
	n, err := db.Insert(first, testTrade("b", cryptotax.Buy, 5, 1.1, 2))
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Insert() = %d new trades, want 1", n)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestDB_Latest(t *testing.T) {
	db := open(t)

	if _, ok, err := db.Latest(); err != nil || ok {
		t.Fatalf("Latest() on empty store = ok %v, err %v; want not ok, nil", ok, err)
	}

	db.Insert(
		testTrade("a", cryptotax.Buy, 10, 1.0, 1),
		testTrade("b", cryptotax.Sell, 4, 1.5, 5),
	)
	latest, ok, err := db.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest() = ok %v, err %v", ok, err)
	}
	if latest.ID != "b" {
		t.Errorf("Latest() = %q, want b", latest.ID)
	}
}

func TestDB_RejectsInvalidTrade(t *testing.T) {
	db := open(t)

	bad := testTrade("a", cryptotax.Buy, 10, 1.0, 1)
	bad.Fee = cryptotax.Q(0.1)
	bad.FeeCurrency = "EUR" // buy fee on the quote side

	if _, err := db.Insert(bad); err == nil {
		t.Fatal("Insert() expected a data integrity error")
	}
}
