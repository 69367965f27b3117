package ibtax

import (
	"testing"
	"time"

	"github.com/fantamp/ibtax/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	day := date.New(2019, time.March, 28)

	dividends := []CashEvent{
		{Kind: Dividend, Day: day, Symbol: "VOO", Amount: USD(50)},
	}
	withholdings := []CashEvent{
		{Kind: Withholding, Day: day, Symbol: "VOO", Amount: USD(-7)},
		{Kind: Withholding, Day: day, Symbol: "VOO", Amount: USD(-3)},
	}

	reports, orphans := Reconcile(dividends, withholdings)
	require.Len(t, reports, 1)
	require.Empty(t, orphans)

	r := reports[0]
	assert.Len(t, r.Withholdings, 2)
	assert.True(t, r.Gross().Equal(USD(50)), "gross = %s, want $50", r.Gross())
	assert.True(t, r.Withheld().Equal(USD(10)), "withheld = %s, want $10", r.Withheld())
	assert.True(t, r.Net().Equal(USD(40)), "net = %s, want $40", r.Net())
}

func TestReconcileNoWithholdings(t *testing.T) {
	dividends := []CashEvent{
		{Kind: Dividend, Day: date.New(2019, time.June, 28), Symbol: "VOO", Amount: USD(55)},
	}

	reports, orphans := Reconcile(dividends, nil)
	require.Len(t, reports, 1)
	require.Empty(t, orphans)

	// untaxed at source is valid, not an error
	assert.True(t, reports[0].Withheld().IsZero())
	assert.True(t, reports[0].Net().Equal(USD(55)))
}

func TestReconcileJoinIsExact(t *testing.T) {
	day := date.New(2019, time.March, 28)
	dividends := []CashEvent{
		{Kind: Dividend, Day: day, Symbol: "VOO", Amount: USD(50)},
	}
	withholdings := []CashEvent{
		// same day, different symbol
		{Kind: Withholding, Day: day, Symbol: "SGOL", Amount: USD(-7)},
		// same symbol, next day
		{Kind: Withholding, Day: day.Add(1), Symbol: "VOO", Amount: USD(-3)},
	}

	reports, orphans := Reconcile(dividends, withholdings)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Withholdings)

	// every unmatched withholding is flagged exactly once
	require.Len(t, orphans, 2)
	assert.Equal(t, "SGOL", orphans[0].Symbol)
	assert.Equal(t, "VOO", orphans[1].Symbol)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	day := date.New(2019, time.March, 28)
	dividends := []CashEvent{
		{Kind: Dividend, Day: day, Symbol: "VOO", Amount: USD(50)},
	}
	withholdings := []CashEvent{
		{Kind: Withholding, Day: day, Symbol: "VOO", Amount: USD(-7)},
	}

	reports, _ := Reconcile(dividends, withholdings)
	require.Len(t, reports, 1)

	// mutating the result must not leak into the caller's slices
	reports[0].Withholdings[0].Symbol = "changed"
	assert.Equal(t, "VOO", withholdings[0].Symbol)
	assert.True(t, withholdings[0].Amount.Equal(USD(-7)))
}
