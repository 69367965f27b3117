package ibkr

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fantamp/ibtax"
)

// LoadDir parses every .csv statement in a directory and merges them
// into one Statement, sorted chronologically (ties broken by symbol).
// The resulting order is what makes the FIFO matcher's treatment
// chronological.
func LoadDir(dir, currency string) (*Statement, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading statements directory: %w", err)
	}

	merged := new(Statement)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		s, err := Parse(f, currency)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("statement %s: %w", entry.Name(), err)
		}
		merged.Trades = append(merged.Trades, s.Trades...)
		merged.Dividends = append(merged.Dividends, s.Dividends...)
		merged.Withholdings = append(merged.Withholdings, s.Withholdings...)
	}

	ibtax.SortTrades(merged.Trades)
	sortCashEvents(merged.Dividends)
	sortCashEvents(merged.Withholdings)
	return merged, nil
}

func sortCashEvents(events []ibtax.CashEvent) {
	slices.SortStableFunc(events, func(a, b ibtax.CashEvent) int {
		if d := b.Day.DaysUntil(a.Day); d != 0 {
			return d
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})
}
