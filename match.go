package ibtax

import (
	"fmt"
	"time"

	"github.com/fantamp/ibtax/date"
	"github.com/google/uuid"
)

// Fragment is a slice of a buy lot consumed by a sale: the quantity it
// contributes and the price and date it was originally acquired at.
type Fragment struct {
	LotID    uuid.UUID // identity of the source buy lot
	Time     time.Time // acquisition time of the source lot
	Quantity Quantity
	Price    Money // unit price of the source lot
}

// Day returns the acquisition day, the key for cost-side rate lookups.
func (f Fragment) Day() date.Date { return date.FromTime(f.Time) }

// Cost is the exact trade-currency cost of the fragment.
func (f Fragment) Cost() Money { return f.Price.Mul(f.Quantity) }

// SaleMatch associates a sale with the ordered buy-lot fragments that
// fund it. Fragment quantities sum exactly to the sale quantity.
type SaleMatch struct {
	Sale      Trade
	Fragments []Fragment
}

// Proceeds is the exact trade-currency value of the sale.
func (s SaleMatch) Proceeds() Money { return s.Sale.Price.Mul(s.Sale.Quantity) }

// CostBasis is the exact trade-currency cost of all funding fragments.
func (s SaleMatch) CostBasis() Money {
	var cost Money
	for _, f := range s.Fragments {
		cost = cost.Add(f.Cost())
	}
	return cost
}

// InsufficientLotsError reports a sale that cannot be fully funded by
// prior same-symbol buys. It is fatal for the run: it signals missing
// or malformed input data, not a transient condition.
type InsufficientLotsError struct {
	Sale      Trade
	Shortfall Quantity
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("not enough buy lots to fulfill sale of %s: short %s shares (%s)",
		e.Sale.Symbol, e.Shortfall, e.Sale)
}

// Match partitions trades into sales and buy lots and funds each sale,
// in input order, from the oldest unconsumed same-symbol buy lots.
// Callers sort trades chronologically first (see SortTrades) to get
// FIFO tax treatment.
//
// Match never mutates its input: buy lots are decremented on private
// working copies, so the same slice can be matched again or shared
// across concurrent runs.
func Match(trades []Trade) (sales []SaleMatch, remaining []Trade, err error) {
	var lots []Trade // working copies, quantities decremented in place
	for _, t := range trades {
		switch t.Side {
		case Buy:
			lots = append(lots, t)
		case Sell:
			sales = append(sales, SaleMatch{Sale: t})
		}
	}

	for i := range sales {
		s := &sales[i]
		left := s.Sale.Quantity
		for j := range lots {
			lot := &lots[j]
			if lot.Symbol != s.Sale.Symbol || lot.Quantity.IsZero() {
				continue
			}
			take := left.Min(lot.Quantity)
			s.Fragments = append(s.Fragments, Fragment{
				LotID:    lot.ID,
				Time:     lot.Time,
				Quantity: take,
				Price:    lot.Price,
			})
			lot.Quantity = lot.Quantity.Sub(take)
			left = left.Sub(take)
			if left.IsZero() {
				break
			}
		}
		// drop exhausted lots before the next sale
		lots = compact(lots)
		if !left.IsZero() {
			return nil, nil, &InsufficientLotsError{Sale: s.Sale, Shortfall: left}
		}
	}
	return sales, lots, nil
}

// compact removes fully consumed lots, preserving order.
func compact(lots []Trade) []Trade {
	kept := lots[:0]
	for _, lot := range lots {
		if !lot.Quantity.IsZero() {
			kept = append(kept, lot)
		}
	}
	return kept
}
