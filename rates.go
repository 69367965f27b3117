package ibtax

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/fantamp/ibtax/date"
	"github.com/shopspring/decimal"
)

// RateSample is one published (day, rate) point of the daily feed.
// Feeds are sparse: nothing is published on non-trading days.
type RateSample struct {
	Day  date.Date
	Rate decimal.Decimal
}

// RateNotFoundError reports a lookup outside the table's coverage.
// There is deliberately no fallback rate: a wrong conversion is worse
// than a failed run.
type RateNotFoundError struct {
	Day date.Date
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("no exchange rate known for %s", e.Day)
}

// RateTable is a complete daily exchange-rate lookup built once from
// sparse samples. It is immutable after construction and safe to share
// between concurrent readers.
type RateTable struct {
	first, last date.Date
	rates       map[date.Date]decimal.Decimal
}

// NewRateTable builds a daily table from samples. Calendar gaps between
// consecutive samples are filled forward: the earlier sample's rate
// holds through non-trading days until the next published rate.
// Building twice from the same samples yields an identical table.
func NewRateTable(samples []RateSample) *RateTable {
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b RateSample) int { return b.Day.DaysUntil(a.Day) })

	t := &RateTable{rates: make(map[date.Date]decimal.Decimal, len(sorted))}
	var prev RateSample
	for i, s := range sorted {
		if i > 0 {
			for day := prev.Day.Add(1); day.Before(s.Day); day = day.Add(1) {
				t.rates[day] = prev.Rate
			}
		}
		t.rates[s.Day] = s.Rate
		prev = s
	}
	if len(sorted) > 0 {
		t.first, t.last = sorted[0].Day, sorted[len(sorted)-1].Day
	}
	return t
}

// RateOn returns the exact rate effective on the given day. It fails
// with *RateNotFoundError for days before the first sample, after the
// last sample, or when the table was built from no samples at all.
func (t *RateTable) RateOn(day date.Date) (decimal.Decimal, error) {
	if len(t.rates) == 0 || day.Before(t.first) || day.After(t.last) {
		return decimal.Decimal{}, &RateNotFoundError{Day: day}
	}
	return t.rates[day], nil
}

// Covers reports whether the day falls inside the table's known range.
func (t *RateTable) Covers(day date.Date) bool {
	return len(t.rates) > 0 && !day.Before(t.first) && !day.After(t.last)
}

// feedDayFormat is the date layout of the central bank feed.
const feedDayFormat = "02.01.2006"

// ParseRateSamples reads the flat daily-rate feed: one sample per line,
// tab separated day and rate, e.g. "27.07.2018\t62,9471". The rate uses
// a locale decimal comma and may contain grouping spaces; both are
// normalized here so the core only ever sees canonical decimals.
func ParseRateSamples(r io.Reader) ([]RateSample, error) {
	var samples []RateSample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		dayStr, rateStr, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("rate feed line %d: want <day>\\t<rate>, got %q", line, text)
		}
		day, err := time.Parse(feedDayFormat, strings.TrimSpace(dayStr))
		if err != nil {
			return nil, fmt.Errorf("rate feed line %d: %w", line, err)
		}
		rateStr = strings.ReplaceAll(strings.ReplaceAll(rateStr, ",", "."), " ", "")
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("rate feed line %d: %w", line, err)
		}
		samples = append(samples, RateSample{Day: date.FromTime(day), Rate: rate})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rate feed: %w", err)
	}
	return samples, nil
}
