package cryptotax

import "fmt"

// DataIntegrityError reports a trade record that violates the record
// invariants (non-positive amount or price, negative fee, or a
// non-preferential fee denominated in the wrong currency for its side).
// It is fatal: continuing would silently mis-attribute fees.
type DataIntegrityError struct {
	TradeID string
	Reason  string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity error in trade %q: %s", e.TradeID, e.Reason)
}

// InsufficientLotsError reports a SELL with no matching open BUY volume left.
// It signals either missing history or a genuine inconsistency, and the
// matcher must not guess at a cost basis.
type InsufficientLotsError struct {
	Pair    Pair
	TradeID string
	Missing Quantity // unmatched volume left when the queue ran out
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("insufficient open lots for %s: sell %q has %s unmatched volume", e.Pair, e.TradeID, e.Missing)
}

// NegativeBalanceWarning records a running balance that went below zero.
// It is non-fatal: it can arise from legitimate edge timing, so it is
// surfaced in the report instead of aborting the run.
type NegativeBalanceWarning struct {
	Currency string
	Balance  Quantity
	TradeID  string // the trade that took the balance negative
}

func (w NegativeBalanceWarning) String() string {
	return fmt.Sprintf("balance of %s is %s after trade %q", w.Currency, w.Balance, w.TradeID)
}
