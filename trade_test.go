package cryptotax

import (
	"errors"
	"testing"
)

func TestTrade_BaseDelta(t *testing.T) {
	buy := withFee(trade(Buy, bestEUR, 10, 1.0, 1), 0.5, "BEST", false)
	if got := buy.BaseDelta(); !got.Equal(Q(9.5)) {
		t.Errorf("BaseDelta() of buy with standard fee = %s, want 9.5", got)
	}

	sell := withFee(trade(Sell, bestEUR, 10, 1.5, 2), 0.1, "EUR", false)
	if got := sell.BaseDelta(); !got.Equal(Q(-10.0)) {
		t.Errorf("BaseDelta() of sell = %s, want -10", got)
	}

	// A preferential fee is paid from the discount token balance, not from
	// the acquired amount.
	pref := withFee(trade(Buy, panEUR, 10, 1.0, 1), 0.5, "BEST", true)
	if got := pref.BaseDelta(); !got.Equal(Q(10.0)) {
		t.Errorf("BaseDelta() of buy with preferential fee = %s, want 10", got)
	}
}

func TestTrade_QuoteDelta(t *testing.T) {
	buy := trade(Buy, bestEUR, 10, 1.2, 1)
	if got := buy.QuoteDelta(); !got.Equal(EUR(-12.0)) {
		t.Errorf("QuoteDelta() of buy = %s, want -12 EUR", got)
	}

	sell := withFee(trade(Sell, bestEUR, 10, 1.5, 2), 0.1, "EUR", false)
	if got := sell.QuoteDelta(); !got.Equal(EUR(14.9)) {
		t.Errorf("QuoteDelta() of sell with standard fee = %s, want 14.9 EUR", got)
	}

	pref := withFee(trade(Sell, bestEUR, 10, 1.5, 2), 0.1, "BEST", true)
	if got := pref.QuoteDelta(); !got.Equal(EUR(15.0)) {
		t.Errorf("QuoteDelta() of sell with preferential fee = %s, want 15 EUR", got)
	}
}

func TestTrade_Validate(t *testing.T) {
	tests := []struct {
		name    string
		trade   Trade
		wantErr bool
	}{
		{"feeless buy", trade(Buy, bestEUR, 10, 1.0, 1), false},
		{"standard buy fee in base", withFee(trade(Buy, bestEUR, 10, 1.0, 1), 0.1, "BEST", false), false},
		{"standard sell fee in quote", withFee(trade(Sell, bestEUR, 10, 1.5, 2), 0.1, "EUR", false), false},
		{"standard buy fee in quote", withFee(trade(Buy, bestEUR, 10, 1.0, 1), 0.1, "EUR", false), true},
		{"standard sell fee in base", withFee(trade(Sell, bestEUR, 10, 1.5, 2), 0.1, "BEST", false), true},
		{"preferential fee in any currency", withFee(trade(Sell, panEUR, 10, 1.5, 2), 0.1, "BEST", true), false},
		{"zero amount", trade(Buy, bestEUR, 0, 1.0, 1), true},
		{"zero price", trade(Buy, bestEUR, 10, 0, 1), true},
		{"negative fee", withFee(trade(Buy, bestEUR, 10, 1.0, 1), -0.1, "BEST", false), true},
		{"fee without currency", withFee(trade(Buy, bestEUR, 10, 1.0, 1), 0.1, "", false), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.trade.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr = %v", err, tc.wantErr)
			}
			if err == nil {
				return
			}
			var die *DataIntegrityError
			if !errors.As(err, &die) {
				t.Errorf("Validate() error is %T, want *DataIntegrityError", err)
			}
		})
	}
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("BEST_EUR")
	if err != nil {
		t.Fatalf("ParsePair() error = %v", err)
	}
	if p != bestEUR {
		t.Errorf("ParsePair() = %v, want %v", p, bestEUR)
	}

	for _, bad := range []string{"BEST", "_EUR", "BEST_", ""} {
		if _, err := ParsePair(bad); err == nil {
			t.Errorf("ParsePair(%q) expected an error", bad)
		}
	}
}

func TestPair_UnmarshalJSON(t *testing.T) {
	var p Pair
	if err := p.UnmarshalJSON([]byte(`"BEST_EUR"`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if p != bestEUR {
		t.Errorf("UnmarshalJSON() = %v, want %v", p, bestEUR)
	}

	// Anything but a JSON string holding a pair code is rejected.
	for _, bad := range []string{`BEST_EUR`, `"BEST_EUR`, `42`, `"BEST"`} {
		var p Pair
		if err := p.UnmarshalJSON([]byte(bad)); err == nil {
			t.Errorf("UnmarshalJSON(%s) expected an error", bad)
		}
	}
}
