// Package ibtax computes realized capital gains and dividend income
// from broker trade records, for tax reporting in another currency.
//
// The core is a pure batch computation over normalized records:
//   - FIFO lot matching: every sale is funded from the oldest
//     unconsumed same-symbol buy lots, producing the exact fragments
//     that determine its cost basis.
//   - Exchange rate table: an eagerly built daily lookup over a sparse
//     published feed, forward-filling non-trading days; lookups outside
//     the known range fail rather than guess.
//   - Dividend reconciliation: each dividend is joined with the
//     withholding-tax entries of the same symbol and date.
//   - Reporting: profits are converted per leg, at the rate effective
//     on the day each leg's cash flow occurred.
//
// All arithmetic is exact decimal; nothing is rounded before display.
// Inputs are never mutated, so independent runs can share them freely.
// Ingestion of broker statements lives in the ibkr subpackage, the
// rate feed updater in cbr, and presentation in renderer.
package ibtax
