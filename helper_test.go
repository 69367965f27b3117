package ibtax

import (
	"testing"
	"time"
)

// USD is a helper for tests to create trade-currency money from const.
func USD(v float64) Money { return M(v, "USD") }

// RUB is a helper for tests to create reporting-currency money from const.
func RUB(v float64) Money { return M(v, "RUB") }

// at parses a trade timestamp in the statement's own format.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02, 15:04:05", s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return ts
}

// trade builds a valid trade or fails the test.
func trade(t *testing.T, ts string, side Side, symbol string, qty int, price float64) Trade {
	t.Helper()
	tr, err := NewTrade(at(t, ts), side, symbol, Q(qty), USD(price))
	if err != nil {
		t.Fatalf("NewTrade() error = %v", err)
	}
	return tr
}
