package ibtax

import (
	"fmt"
	"slices"
	"time"

	"github.com/fantamp/ibtax/date"
	"github.com/google/uuid"
)

// Side classifies a trade as a purchase or a sale.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Trade is a single normalized trade event. It is validated once at
// construction and read-only afterwards: the matcher works on private
// copies, never on caller-owned values.
type Trade struct {
	ID       uuid.UUID // lot identity, referenced by sale fragments
	Time     time.Time
	Side     Side
	Symbol   string
	Quantity Quantity // whole shares, strictly positive
	Price    Money    // unit price
}

// Day returns the calendar day of the trade, the key used for
// exchange-rate lookups.
func (t Trade) Day() date.Date { return date.FromTime(t.Time) }

func (t Trade) String() string {
	return fmt.Sprintf("%s %s %s %s at %s per unit", t.Day(), t.Side, t.Quantity, t.Symbol, t.Price)
}

// InvalidRecordError reports a malformed upstream record. Records are
// rejected whole at the boundary, never partially constructed.
type InvalidRecordError struct {
	Field string
	Value string
	Cause error
}

func (e *InvalidRecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid record: %s %q: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid record: %s %q", e.Field, e.Value)
}

func (e *InvalidRecordError) Unwrap() error { return e.Cause }

// NewTrade validates and builds a Trade. Quantity must be a positive
// whole number of shares and the side must be Buy or Sell.
func NewTrade(at time.Time, side Side, symbol string, quantity Quantity, price Money) (Trade, error) {
	if symbol == "" {
		return Trade{}, &InvalidRecordError{Field: "symbol", Value: symbol}
	}
	if side != Buy && side != Sell {
		return Trade{}, &InvalidRecordError{Field: "side", Value: string(side)}
	}
	if !quantity.IsPositive() || !quantity.IsInteger() {
		return Trade{}, &InvalidRecordError{Field: "quantity", Value: quantity.String()}
	}
	return Trade{
		ID:       uuid.New(),
		Time:     at,
		Side:     side,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
	}, nil
}

// SortTrades orders trades chronologically, breaking ties by symbol.
// The matcher processes trades in the order given, so callers sort
// before matching to get chronological FIFO treatment.
func SortTrades(trades []Trade) {
	slices.SortStableFunc(trades, func(a, b Trade) int {
		if a.Time.Before(b.Time) {
			return -1
		}
		if a.Time.After(b.Time) {
			return 1
		}
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		}
		return 0
	})
}
