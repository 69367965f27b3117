// Package renderer turns tax reports into markdown for the terminal.
// It owns all human-readable formatting; the engine only produces exact
// figures.
package renderer

import (
	"fmt"
	"strings"

	"github.com/fantamp/ibtax"
)

// TaxReportMarkdown renders the complete report: realized sales,
// remaining lots and reconciled dividends.
func TaxReportMarkdown(r *ibtax.TaxReport) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Tax Report\n\n")
	b.WriteString(GainsMarkdown(r))
	b.WriteString(LotsMarkdown(r.Remaining))
	b.WriteString(DividendsMarkdown(r))
	return b.String()
}

// GainsMarkdown renders realized sales with per-leg converted figures.
func GainsMarkdown(r *ibtax.TaxReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Realized Gains (%s)\n\n", r.ReportingCurrency)

	fmt.Fprintln(&b, "| Date | Security | Qty | Proceeds | Cost Basis | Profit | Proceeds* | Cost Basis* | Profit* |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, s := range r.Sales {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			s.Match.Sale.Day(),
			s.Match.Sale.Symbol,
			s.Match.Sale.Quantity,
			s.Proceeds,
			s.CostBasis,
			s.Profit.SignedString(),
			s.ProceedsConv,
			s.CostBasisConv,
			s.ProfitConv.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | | | **%s** |\n", r.TotalProfit().SignedString())
	fmt.Fprintf(&b, "\n\\* converted to %s at the rate of each leg's own date\n\n", r.ReportingCurrency)

	for _, s := range r.Sales {
		fmt.Fprintf(&b, "### Sold %s %s on %s\n\n", s.Match.Sale.Quantity, s.Match.Sale.Symbol, s.Match.Sale.Day())
		fmt.Fprintln(&b, "| Bought | Qty | Unit Price | Cost |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, f := range s.Match.Fragments {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Day(), f.Quantity, f.Price, f.Cost())
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

// LotsMarkdown renders the buy lots left unsold after matching.
func LotsMarkdown(lots []ibtax.Trade) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Remaining Lots\n\n")
	if len(lots) == 0 {
		fmt.Fprint(&b, "(none)\n\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Bought | Security | Qty | Unit Price |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, lot := range lots {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", lot.Day(), lot.Symbol, lot.Quantity, lot.Price)
	}
	fmt.Fprintln(&b)
	return b.String()
}

// DividendsMarkdown renders reconciled dividends and flags withholdings
// that matched no dividend.
func DividendsMarkdown(r *ibtax.TaxReport) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Dividends\n\n")
	fmt.Fprintln(&b, "| Date | Security | Gross | Withheld | Net | Gross* | Withheld* | Net* |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, d := range r.Dividends {
		rep := d.Report
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			rep.Dividend.Day,
			rep.Dividend.Symbol,
			rep.Gross(),
			rep.Withheld(),
			rep.Net(),
			d.GrossConv,
			d.WithheldConv,
			d.NetConv,
		)
	}
	fmt.Fprintf(&b, "\n\\* converted to %s at the dividend date rate\n\n", r.ReportingCurrency)

	if len(r.Orphans) > 0 {
		fmt.Fprint(&b, "### Unmatched Withholdings\n\n")
		fmt.Fprint(&b, "Withholding entries with no dividend on the same symbol and date, check the statements:\n\n")
		for _, w := range r.Orphans {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
