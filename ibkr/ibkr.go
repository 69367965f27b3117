// Package ibkr reads Interactive Brokers activity statements and turns
// them into normalized records for the tax engine.
//
// An activity statement is a single CSV file holding several tables:
// each row starts with the table name, then "Header" or "Data". Only
// the Trades, Dividends and Withholding Tax tables are used here.
package ibkr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fantamp/ibtax"
	"github.com/fantamp/ibtax/date"
)

const (
	tableTrades       = "Trades"
	tableDividends    = "Dividends"
	tableWithholdings = "Withholding Tax"
)

const (
	tradeTimeFormat = "2006-01-02, 15:04:05"
	cashDayFormat   = "2006-01-02"
)

// Statement holds the normalized records of one or more activity
// statements, ready for matching and reconciliation.
type Statement struct {
	Trades       []ibtax.Trade
	Dividends    []ibtax.CashEvent
	Withholdings []ibtax.CashEvent
}

// record is one Data row keyed by its table's Header row.
type record map[string]string

// readTables splits the sectioned CSV into per-table record lists.
// Summary rows ("Total" pseudo-currency) of the money tables carry no
// event and are skipped.
func readTables(r io.Reader) (map[string][]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	tables := make(map[string][]record)
	var table string
	var keys []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading statement: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		switch row[1] {
		case "Header":
			table, keys = row[0], row
			if _, seen := tables[table]; !seen {
				tables[table] = nil
			}
		case "Data":
			if table == "" {
				continue
			}
			rec := make(record, len(keys))
			for i, k := range keys {
				if i < len(row) {
					rec[k] = row[i]
				}
			}
			if (table == tableDividends || table == tableWithholdings) && rec["Currency"] == "Total" {
				continue
			}
			tables[table] = append(tables[table], rec)
		}
	}
	return tables, nil
}

// tradeFromRecord builds a trade from a Trades table row. The side is
// classified by the sign of the Quantity column: negative means sell.
func tradeFromRecord(rec record, currency string) (ibtax.Trade, error) {
	at, err := time.Parse(tradeTimeFormat, rec["Date/Time"])
	if err != nil {
		return ibtax.Trade{}, &ibtax.InvalidRecordError{Field: "Date/Time", Value: rec["Date/Time"], Cause: err}
	}
	qty, err := strconv.ParseInt(strings.ReplaceAll(rec["Quantity"], ",", ""), 10, 64)
	if err != nil {
		return ibtax.Trade{}, &ibtax.InvalidRecordError{Field: "Quantity", Value: rec["Quantity"], Cause: err}
	}
	side := ibtax.Buy
	if qty < 0 {
		side, qty = ibtax.Sell, -qty
	}
	price, err := ibtax.ParseMoney(rec["T. Price"], currency)
	if err != nil {
		return ibtax.Trade{}, &ibtax.InvalidRecordError{Field: "T. Price", Value: rec["T. Price"], Cause: err}
	}
	return ibtax.NewTrade(at, side, rec["Symbol"], ibtax.Q(qty), price)
}

// cashEventFromRecord builds a dividend or withholding event from a row
// of the money tables. The symbol is the description text before the
// first '(' of the ISIN, e.g. "VOO(US9229083632) Cash Dividend ...".
func cashEventFromRecord(rec record, kind ibtax.CashEventKind, currency string) (ibtax.CashEvent, error) {
	day, err := time.Parse(cashDayFormat, rec["Date"])
	if err != nil {
		return ibtax.CashEvent{}, &ibtax.InvalidRecordError{Field: "Date", Value: rec["Date"], Cause: err}
	}
	symbol, _, _ := strings.Cut(rec["Description"], "(")
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ibtax.CashEvent{}, &ibtax.InvalidRecordError{Field: "Description", Value: rec["Description"]}
	}
	amount, err := ibtax.ParseMoney(rec["Amount"], currency)
	if err != nil {
		return ibtax.CashEvent{}, &ibtax.InvalidRecordError{Field: "Amount", Value: rec["Amount"], Cause: err}
	}
	return ibtax.CashEvent{
		Kind:   kind,
		Day:    date.FromTime(day),
		Symbol: symbol,
		Amount: amount,
	}, nil
}

// Parse reads one activity statement. Trade prices and cash amounts are
// denominated in the given statement currency.
func Parse(r io.Reader, currency string) (*Statement, error) {
	tables, err := readTables(r)
	if err != nil {
		return nil, err
	}

	s := new(Statement)
	for _, rec := range tables[tableTrades] {
		t, err := tradeFromRecord(rec, currency)
		if err != nil {
			return nil, err
		}
		s.Trades = append(s.Trades, t)
	}
	for _, rec := range tables[tableDividends] {
		e, err := cashEventFromRecord(rec, ibtax.Dividend, currency)
		if err != nil {
			return nil, err
		}
		s.Dividends = append(s.Dividends, e)
	}
	for _, rec := range tables[tableWithholdings] {
		e, err := cashEventFromRecord(rec, ibtax.Withholding, currency)
		if err != nil {
			return nil, err
		}
		s.Withholdings = append(s.Withholdings, e)
	}
	return s, nil
}
