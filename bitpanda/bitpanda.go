// Package bitpanda fetches account trades from the Bitpanda Exchange API.
//
// It deals with the plumbing the core deliberately ignores: authentication,
// cursor pagination, and the exchange's fee block. Fetched trades come out as
// validated cryptotax.Trade values in the order the exchange reports them.
package bitpanda

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/etnz/cryptotax"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Bitpanda Exchange API.
const DefaultBaseURL = "https://api.exchange.bitpanda.com/public/v1"

const userAgent = "ctax-fetcher"

// maxPageSize is the page size requested from the trades endpoint.
const maxPageSize = 100

// Client accesses the Bitpanda Exchange API on behalf of one account.
type Client struct {
	APIKey  string
	BaseURL string       // DefaultBaseURL when empty
	HTTP    *http.Client // http.DefaultClient when nil
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// jwget performs an authenticated HTTP GET on the given endpoint and
// unmarshals the JSON response body into the provided data structure.
func (c *Client) jwget(endpoint string, params url.Values, data interface{}) error {
	addr := c.base() + endpoint
	if len(params) > 0 {
		addr += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", c.base(), endpoint, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

// wire shapes of the /account/trades response.
//
//	{
//	  "trade_history": [
//	    {
//	      "trade": {
//	        "trade_id": "...",
//	        "instrument_code": "BEST_EUR",
//	        "side": "BUY",
//	        "amount": "10.0",
//	        "price": "1.0",
//	        "time": "2021-01-01T10:00:00.000Z"
//	      },
//	      "fee": {
//	        "fee_amount": "0.1",
//	        "fee_currency": "BEST",
//	        "collection_type": "BEST"
//	      }
//	    }
//	  ],
//	  "cursor": "opaque-token"
//	}
type jtrade struct {
	TradeID        string          `json:"trade_id"`
	InstrumentCode string          `json:"instrument_code"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	Price          decimal.Decimal `json:"price"`
	Time           time.Time       `json:"time"`
}

type jfee struct {
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	FeeCurrency    string          `json:"fee_currency"`
	CollectionType string          `json:"collection_type"`
}

type jentry struct {
	Trade jtrade `json:"trade"`
	Fee   jfee   `json:"fee"`
}

type jpage struct {
	TradeHistory []jentry `json:"trade_history"`
	Cursor       string   `json:"cursor"`
}

// Trades fetches all account trades in [from, to], paging through the
// cursor until the API stops returning one. Zero times mean no bound.
// Every trade is validated before it is returned, so a fee block the core
// cannot account for aborts the import instead of poisoning the history.
func (c *Client) Trades(from, to time.Time) ([]cryptotax.Trade, error) {
	var trades []cryptotax.Trade
	cursor := ""
	for {
		params := url.Values{}
		params.Set("max_page_size", fmt.Sprint(maxPageSize))
		if !from.IsZero() {
			params.Set("from", from.Format(time.RFC3339))
		}
		if !to.IsZero() {
			params.Set("to", to.Format(time.RFC3339))
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page jpage
		if err := c.jwget("/account/trades", params, &page); err != nil {
			return nil, err
		}

		for _, entry := range page.TradeHistory {
			t, err := entry.convert()
			if err != nil {
				return nil, err
			}
			trades = append(trades, t)
		}

		if page.Cursor == "" {
			return trades, nil
		}
		cursor = page.Cursor
	}
}

// convert turns one wire entry into a validated trade.
func (e jentry) convert() (cryptotax.Trade, error) {
	pair, err := cryptotax.ParsePair(e.Trade.InstrumentCode)
	if err != nil {
		return cryptotax.Trade{}, fmt.Errorf("trade %q: %w", e.Trade.TradeID, err)
	}

	t := cryptotax.Trade{
		ID:          e.Trade.TradeID,
		Pair:        pair,
		Side:        cryptotax.Side(e.Trade.Side),
		Amount:      cryptotax.Q(e.Trade.Amount),
		Price:       cryptotax.M(e.Trade.Price, pair.Quote),
		Time:        e.Trade.Time,
		Fee:         cryptotax.Q(e.Fee.FeeAmount),
		FeeCurrency: e.Fee.FeeCurrency,
	}

	switch e.Fee.CollectionType {
	case "BEST":
		t.Preferential = true
	case "STANDARD":
		t.Preferential = false
	case "":
		// only an absent fee block, a non-zero fee needs a collection type.
		if !t.Fee.IsZero() {
			return cryptotax.Trade{}, fmt.Errorf("trade %q: fee %s without a collection type", e.Trade.TradeID, t.Fee)
		}
	default:
		return cryptotax.Trade{}, fmt.Errorf("trade %q: unknown fee collection type %q", e.Trade.TradeID, e.Fee.CollectionType)
	}

	// Validate catches a STANDARD fee charged on the wrong side of the pair.
	if err := t.Validate(); err != nil {
		return cryptotax.Trade{}, err
	}
	return t, nil
}
