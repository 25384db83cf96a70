// Package cryptotax reconciles a chronological ledger of exchange trades into
// realized capital gains and running per-currency balances.
//
// The core is a FIFO cost basis matcher: every SELL is matched against the
// oldest still-open BUY lots of the same pair, partial consumption included,
// with the sell fee prorated exactly over the matched volume. All arithmetic
// is exact decimal; rounding happens only when reports are rendered.
//
// The package consumes an ordered sequence of immutable Trade records and
// produces reports. Fetching trades from the exchange and persisting them are
// the business of the bitpanda and store packages.
package cryptotax
