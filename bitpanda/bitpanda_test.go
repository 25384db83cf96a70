package bitpanda

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/cryptotax"
)

const page1 = `{
  "trade_history": [
    {
      "trade": {
        "trade_id": "t1",
        "instrument_code": "BEST_EUR",
        "side": "BUY",
        "amount": "10.0",
        "price": "1.0",
        "time": "2021-01-01T10:00:00Z"
      },
      "fee": {
        "fee_amount": "0.5",
        "fee_currency": "BEST",
        "collection_type": "STANDARD"
      }
    }
  ],
  "cursor": "next"
}`

const page2 = `{
  "trade_history": [
    {
      "trade": {
        "trade_id": "t2",
        "instrument_code": "BEST_EUR",
        "side": "SELL",
        "amount": "4.0",
        "price": "1.5",
        "time": "2021-01-02T10:00:00Z"
      },
      "fee": {
        "fee_amount": "0.1",
        "fee_currency": "BEST",
        "collection_type": "BEST"
      }
    }
  ]
}`

func TestClient_TradesPagination(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want Bearer secret", got)
		}
		requests = append(requests, r.URL.RawQuery)
		if r.URL.Query().Get("cursor") == "next" {
			fmt.Fprint(w, page2)
			return
		}
		fmt.Fprint(w, page1)
	}))
	defer server.Close()

	c := &Client{APIKey: "secret", BaseURL: server.URL}
	trades, err := c.Trades(time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Trades() error = %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 page requests, got %d: %v", len(requests), requests)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].ID != "t1" || trades[0].Preferential {
		t.Errorf("first trade = %v, want standard-fee t1", trades[0])
	}
	if trades[1].ID != "t2" || !trades[1].Preferential {
		t.Errorf("second trade = %v, want preferential-fee t2", trades[1])
	}
}

func TestClient_TradesRejectsUnknownFeeType(t *testing.T) {
	payload := `{
      "trade_history": [
        {
          "trade": {
            "trade_id": "t1",
            "instrument_code": "BEST_EUR",
            "side": "BUY",
            "amount": "10.0",
            "price": "1.0",
            "time": "2021-01-01T10:00:00Z"
          },
          "fee": {
            "fee_amount": "0.5",
            "fee_currency": "BEST",
            "collection_type": "MYSTERY"
          }
        }
      ]
    }`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	c := &Client{BaseURL: server.URL}
	if _, err := c.Trades(time.Time{}, time.Time{}); err == nil {
		t.Fatal("Trades() expected an error for an unknown fee collection type")
	}
}

func TestClient_TradesRejectsFeeWithoutCollectionType(t *testing.T) {
	payload := `{
      "trade_history": [
        {
          "trade": {
            "trade_id": "t1",
            "instrument_code": "BEST_EUR",
            "side": "BUY",
            "amount": "10.0",
            "price": "1.0",
            "time": "2021-01-01T10:00:00Z"
          },
          "fee": {
            "fee_amount": "0.5",
            "fee_currency": "BEST",
            "collection_type": ""
          }
        }
      ]
    }`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	c := &Client{BaseURL: server.URL}
	if _, err := c.Trades(time.Time{}, time.Time{}); err == nil {
		t.Fatal("Trades() expected an error for a non-zero fee without a collection type")
	}
}

func TestClient_TradesAcceptsAbsentFeeBlock(t *testing.T) {
	payload := `{
      "trade_history": [
        {
          "trade": {
            "trade_id": "t1",
            "instrument_code": "BEST_EUR",
            "side": "BUY",
            "amount": "10.0",
            "price": "1.0",
            "time": "2021-01-01T10:00:00Z"
          }
        }
      ]
    }`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	c := &Client{BaseURL: server.URL}
	trades, err := c.Trades(time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Trades() error = %v", err)
	}
	if len(trades) != 1 || !trades[0].Fee.IsZero() || trades[0].Preferential {
		t.Errorf("expected one feeless standard trade, got %v", trades)
	}
}

func TestClient_LatestPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/market-ticker/BEST_EUR" {
			t.Errorf("path = %q, want /market-ticker/BEST_EUR", r.URL.Path)
		}
		fmt.Fprint(w, `{"instrument_code":"BEST_EUR","state":"ACTIVE","last_price":"0.52"}`)
	}))
	defer server.Close()

	c := &Client{BaseURL: server.URL}
	pair := cryptotax.Pair{Base: "BEST", Quote: "EUR"}
	price, err := c.LatestPrice(pair)
	if err != nil {
		t.Fatalf("LatestPrice() error = %v", err)
	}
	if !price.Equal(cryptotax.M(0.52, "EUR")) {
		t.Errorf("LatestPrice() = %s, want 0.52 EUR", price)
	}
}
