package ibtax

import "fmt"

// SaleProfit is the realized result of one sale, in both the trade
// currency and the reporting currency. Conversion is per leg: proceeds
// use the rate on the sale day, each cost fragment uses the rate on its
// own acquisition day, because that is when each leg's cash flow
// occurred.
type SaleProfit struct {
	Match SaleMatch

	Proceeds  Money // trade currency
	CostBasis Money
	Profit    Money

	ProceedsConv  Money // reporting currency
	CostBasisConv Money
	ProfitConv    Money
}

// DividendIncome is one reconciled dividend with its figures converted
// into the reporting currency at the rate on the dividend day.
type DividendIncome struct {
	Report DividendReport

	GrossConv    Money
	WithheldConv Money
	NetConv      Money
}

// TaxReport is the full outcome of one batch run.
type TaxReport struct {
	ReportingCurrency string
	Sales             []SaleProfit
	Remaining         []Trade // unsold buy lots after matching
	Dividends         []DividendIncome
	Orphans           []CashEvent // withholdings with no matching dividend
}

// TotalProfit sums realized profit over all sales, in the reporting currency.
func (r *TaxReport) TotalProfit() Money {
	total := M(0, r.ReportingCurrency)
	for _, s := range r.Sales {
		total = total.Add(s.ProfitConv)
	}
	return total
}

// ConvertSales computes per-sale profit figures from match results,
// consulting the rate table once per money leg. A missing rate is fatal
// and propagated as *RateNotFoundError.
func ConvertSales(matches []SaleMatch, rates *RateTable, currency string) ([]SaleProfit, error) {
	profits := make([]SaleProfit, 0, len(matches))
	for _, m := range matches {
		saleRate, err := rates.RateOn(m.Sale.Day())
		if err != nil {
			return nil, fmt.Errorf("converting proceeds of %s: %w", m.Sale, err)
		}
		p := SaleProfit{
			Match:        m,
			Proceeds:     m.Proceeds(),
			CostBasis:    m.CostBasis(),
			ProceedsConv: m.Proceeds().MulRate(saleRate, currency),
		}
		costConv := M(0, currency)
		for _, f := range m.Fragments {
			buyRate, err := rates.RateOn(f.Day())
			if err != nil {
				return nil, fmt.Errorf("converting cost basis of %s: %w", m.Sale, err)
			}
			costConv = costConv.Add(f.Cost().MulRate(buyRate, currency))
		}
		p.CostBasisConv = costConv
		p.Profit = p.Proceeds.Sub(p.CostBasis)
		p.ProfitConv = p.ProceedsConv.Sub(p.CostBasisConv)
		profits = append(profits, p)
	}
	return profits, nil
}

// ConvertDividends converts reconciled dividends on their own pay day.
func ConvertDividends(reports []DividendReport, rates *RateTable, currency string) ([]DividendIncome, error) {
	incomes := make([]DividendIncome, 0, len(reports))
	for _, r := range reports {
		rate, err := rates.RateOn(r.Dividend.Day)
		if err != nil {
			return nil, fmt.Errorf("converting dividend %s: %w", r.Dividend, err)
		}
		incomes = append(incomes, DividendIncome{
			Report:       r,
			GrossConv:    r.Gross().MulRate(rate, currency),
			WithheldConv: r.Withheld().MulRate(rate, currency),
			NetConv:      r.Net().MulRate(rate, currency),
		})
	}
	return incomes, nil
}

// BuildTaxReport runs the whole pipeline over normalized records:
// FIFO matching, dividend reconciliation, and currency conversion.
func BuildTaxReport(trades []Trade, dividends, withholdings []CashEvent, rates *RateTable, currency string) (*TaxReport, error) {
	matches, remaining, err := Match(trades)
	if err != nil {
		return nil, err
	}
	sales, err := ConvertSales(matches, rates, currency)
	if err != nil {
		return nil, err
	}
	reconciled, orphans := Reconcile(dividends, withholdings)
	incomes, err := ConvertDividends(reconciled, rates, currency)
	if err != nil {
		return nil, err
	}
	return &TaxReport{
		ReportingCurrency: currency,
		Sales:             sales,
		Remaining:         remaining,
		Dividends:         incomes,
		Orphans:           orphans,
	}, nil
}
