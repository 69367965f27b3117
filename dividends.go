package ibtax

import (
	"fmt"

	"github.com/fantamp/ibtax/date"
)

// CashEventKind tells a dividend payment from a withholding-tax entry.
type CashEventKind string

const (
	Dividend    CashEventKind = "dividend"
	Withholding CashEventKind = "withholding"
)

// CashEvent is a normalized dividend or withholding record: money paid
// in or taken out for a symbol on a calendar day. Withholding amounts
// arrive negative from the broker and are kept as-is.
type CashEvent struct {
	Kind   CashEventKind
	Day    date.Date
	Symbol string
	Amount Money
}

func (e CashEvent) String() string {
	return fmt.Sprintf("%s %s %s %s", e.Kind, e.Day, e.Symbol, e.Amount)
}

// DividendReport is one dividend with every withholding entry sharing
// its exact (symbol, day) key.
type DividendReport struct {
	Dividend     CashEvent
	Withholdings []CashEvent
}

// Gross is the dividend amount before tax.
func (r DividendReport) Gross() Money { return r.Dividend.Amount }

// Withheld is the total tax withheld at source, as a positive amount.
// A dividend with no matching withholdings reports zero, not an error.
func (r DividendReport) Withheld() Money {
	var total Money
	for _, w := range r.Withholdings {
		total = total.Add(w.Amount)
	}
	return total.Abs()
}

// Net is the dividend amount after withheld tax.
func (r DividendReport) Net() Money { return r.Gross().Sub(r.Withheld()) }

// Reconcile joins each dividend with the withholding entries sharing
// its exact (symbol, day) key. The join reads both inputs without
// mutating them. Withholdings that match no dividend are returned as
// orphans so the caller can surface them for manual review.
func Reconcile(dividends, withholdings []CashEvent) (reports []DividendReport, orphans []CashEvent) {
	type key struct {
		symbol string
		day    date.Date
	}
	matched := make([]bool, len(withholdings))

	reports = make([]DividendReport, 0, len(dividends))
	for _, d := range dividends {
		r := DividendReport{Dividend: d}
		k := key{d.Symbol, d.Day}
		for i, w := range withholdings {
			if (key{w.Symbol, w.Day}) == k {
				r.Withholdings = append(r.Withholdings, w)
				matched[i] = true
			}
		}
		reports = append(reports, r)
	}
	for i, w := range withholdings {
		if !matched[i] {
			orphans = append(orphans, w)
		}
	}
	return reports, orphans
}
