// Package cmd implements the CLI application computing capital-gains
// tax lots and dividend reconciliation from broker statements.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/fantamp/ibtax"
	"github.com/fantamp/ibtax/ibkr"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&dividendsCmd{}, "reports")
	c.Register(&lotsCmd{}, "reports")

	c.Register(&fetchRatesCmd{}, "rates")
}

// as a CLI application it has a very short lived lifecycle, so it is ok
// to use global variables for shared flags.

var reportsDir = flag.String("reports", "ib_reports", "Directory holding the broker activity statements (*.csv)")
var ratesFile = flag.String("rates", "data/usd_rub.dat", "Path to the daily exchange rate feed file")
var reportingCurrency = flag.String("currency", "RUB", "Reporting currency for converted figures")
var tradeCurrency = flag.String("trade-currency", "USD", "Currency of the statement trade prices and amounts")

// loadStatements reads and merges all statements from the reports directory.
func loadStatements() (*ibkr.Statement, error) {
	return ibkr.LoadDir(*reportsDir, *tradeCurrency)
}

// loadRateTable reads the local feed file and builds the daily table.
func loadRateTable() (*ibtax.RateTable, error) {
	f, err := os.Open(*ratesFile)
	if err != nil {
		return nil, fmt.Errorf("opening rate feed %q: %w", *ratesFile, err)
	}
	defer f.Close()
	samples, err := ibtax.ParseRateSamples(f)
	if err != nil {
		return nil, fmt.Errorf("rate feed %q: %w", *ratesFile, err)
	}
	return ibtax.NewRateTable(samples), nil
}

// buildReport runs the whole pipeline from the configured inputs.
func buildReport() (*ibtax.TaxReport, error) {
	s, err := loadStatements()
	if err != nil {
		return nil, err
	}
	rates, err := loadRateTable()
	if err != nil {
		return nil, err
	}
	return ibtax.BuildTaxReport(s.Trades, s.Dividends, s.Withholdings, rates, *reportingCurrency)
}
