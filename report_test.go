package ibtax

import (
	"errors"
	"testing"
	"time"

	"github.com/fantamp/ibtax/date"
)

// twoRateTable covers the buy and sell days with different rates, so a
// per-leg conversion is distinguishable from a sale-date conversion.
func twoRateTable(t *testing.T) *RateTable {
	t.Helper()
	return NewRateTable([]RateSample{
		{Day: date.New(2019, time.January, 2), Rate: dec(t, "2")},
		{Day: date.New(2019, time.February, 1), Rate: dec(t, "3")},
	})
}

func TestConvertSalesPerLegRates(t *testing.T) {
	trades := []Trade{
		trade(t, "2019-01-02, 10:00:00", Buy, "VOO", 2, 100.00),
		trade(t, "2019-02-01, 10:00:00", Sell, "VOO", 2, 110.00),
	}
	matches, _, err := Match(trades)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	profits, err := ConvertSales(matches, twoRateTable(t), "RUB")
	if err != nil {
		t.Fatalf("ConvertSales() error = %v", err)
	}
	p := profits[0]

	if !p.Proceeds.Equal(USD(220)) || !p.CostBasis.Equal(USD(200)) || !p.Profit.Equal(USD(20)) {
		t.Errorf("trade-currency figures = %s - %s = %s, want $220 - $200 = $20",
			p.Proceeds, p.CostBasis, p.Profit)
	}

	// proceeds at the sale-day rate (3), cost at the buy-day rate (2):
	// not (220-200)*3.
	if !p.ProceedsConv.Equal(RUB(660)) {
		t.Errorf("converted proceeds = %s, want 660 RUB", p.ProceedsConv)
	}
	if !p.CostBasisConv.Equal(RUB(400)) {
		t.Errorf("converted cost basis = %s, want 400 RUB", p.CostBasisConv)
	}
	if !p.ProfitConv.Equal(RUB(260)) {
		t.Errorf("converted profit = %s, want 260 RUB", p.ProfitConv)
	}
}

func TestConvertSalesMissingRate(t *testing.T) {
	trades := []Trade{
		trade(t, "2019-01-02, 10:00:00", Buy, "VOO", 1, 100.00),
		trade(t, "2019-03-01, 10:00:00", Sell, "VOO", 1, 110.00), // after table coverage
	}
	matches, _, err := Match(trades)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	_, err = ConvertSales(matches, twoRateTable(t), "RUB")
	var notFound *RateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ConvertSales() error = %v, want *RateNotFoundError", err)
	}
	if notFound.Day != date.New(2019, time.March, 1) {
		t.Errorf("error names day %s, want 2019-03-01", notFound.Day)
	}
}

func TestConvertDividendsUsesPayDayRate(t *testing.T) {
	reports, orphans := Reconcile(
		[]CashEvent{{Kind: Dividend, Day: date.New(2019, time.February, 1), Symbol: "VOO", Amount: USD(50)}},
		[]CashEvent{{Kind: Withholding, Day: date.New(2019, time.February, 1), Symbol: "VOO", Amount: USD(-5)}},
	)
	if len(orphans) != 0 {
		t.Fatalf("unexpected orphans: %v", orphans)
	}

	incomes, err := ConvertDividends(reports, twoRateTable(t), "RUB")
	if err != nil {
		t.Fatalf("ConvertDividends() error = %v", err)
	}
	d := incomes[0]
	if !d.GrossConv.Equal(RUB(150)) || !d.WithheldConv.Equal(RUB(15)) || !d.NetConv.Equal(RUB(135)) {
		t.Errorf("converted dividend = %s / %s / %s, want 150 / 15 / 135 RUB",
			d.GrossConv, d.WithheldConv, d.NetConv)
	}
}

func TestBuildTaxReport(t *testing.T) {
	trades := []Trade{
		trade(t, "2019-01-02, 10:00:00", Buy, "VOO", 2, 100.00),
		trade(t, "2019-02-01, 10:00:00", Sell, "VOO", 1, 110.00),
	}
	dividends := []CashEvent{
		{Kind: Dividend, Day: date.New(2019, time.February, 1), Symbol: "VOO", Amount: USD(50)},
	}
	withholdings := []CashEvent{
		{Kind: Withholding, Day: date.New(2019, time.February, 1), Symbol: "VOO", Amount: USD(-5)},
		{Kind: Withholding, Day: date.New(2019, time.January, 2), Symbol: "SGOL", Amount: USD(-1)},
	}

	report, err := BuildTaxReport(trades, dividends, withholdings, twoRateTable(t), "RUB")
	if err != nil {
		t.Fatalf("BuildTaxReport() error = %v", err)
	}

	if len(report.Sales) != 1 || len(report.Remaining) != 1 || len(report.Dividends) != 1 {
		t.Fatalf("report has %d sales, %d remaining, %d dividends, want 1 each",
			len(report.Sales), len(report.Remaining), len(report.Dividends))
	}
	// sale of 1: 330 - 200 = ... one share: proceeds 110*3=330, cost 100*2=200
	if !report.Sales[0].ProfitConv.Equal(RUB(130)) {
		t.Errorf("converted profit = %s, want 130 RUB", report.Sales[0].ProfitConv)
	}
	if !report.TotalProfit().Equal(RUB(130)) {
		t.Errorf("total profit = %s, want 130 RUB", report.TotalProfit())
	}
	if len(report.Orphans) != 1 || report.Orphans[0].Symbol != "SGOL" {
		t.Errorf("orphans = %v, want the SGOL withholding", report.Orphans)
	}
}
