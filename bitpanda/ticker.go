package bitpanda

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptotax"
	"github.com/shopspring/decimal"
)

/*
	{
	    "instrument_code": "BEST_EUR",
	    "sequence": 1234567,
	    "state": "ACTIVE",
	    "last_price": "0.52",
	    "price_change": "-0.01",
	    ...
	}
*/
func (c *Client) LatestPrice(pair cryptotax.Pair) (cryptotax.Money, error) {
	addr := "/market-ticker/" + pair.String()
	var jobj any
	if err := c.jwget(addr, nil, &jobj); err != nil {
		return cryptotax.Money{}, fmt.Errorf("error in wget %q: %w", pair, err)
	}

	// the ticker payload moves with the exchange's api version, so pick the
	// one field we care about instead of binding the whole shape.
	jval, err := jsonpath.Get("$.last_price", jobj)
	if err != nil {
		return cryptotax.Money{}, fmt.Errorf("error parsing ticker for %q: %w", pair, err)
	}
	s, ok := jval.(string)
	if !ok {
		return cryptotax.Money{}, fmt.Errorf("error parsing ticker for %q: last_price is not a string: %v", pair, jval)
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return cryptotax.Money{}, fmt.Errorf("error parsing ticker for %q: %w", pair, err)
	}
	return cryptotax.M(price, pair.Quote), nil
}
