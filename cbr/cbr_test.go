package cbr

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fantamp/ibtax/date"
	"github.com/shopspring/decimal"
)

// canned serves fixed bodies by URL substring and 404 for anything else,
// standing in for the archive which publishes nothing on non-trading days.
type canned map[string]string

func (c canned) RoundTrip(req *http.Request) (*http.Response, error) {
	for fragment, body := range c {
		if strings.Contains(req.URL.Path, fragment) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
				Request:    req,
			}, nil
		}
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(bytes.NewBufferString("not found")),
		Request:    req,
	}, nil
}

const day27 = `{"Date":"2018-07-27T11:30:00+03:00","Valute":{"EUR":{"CharCode":"EUR","Value":73.2157},"USD":{"CharCode":"USD","Nominal":1,"Value":62.9471}}}`
const day31 = `{"Date":"2018-07-31T11:30:00+03:00","Valute":{"USD":{"CharCode":"USD","Nominal":1,"Value":62.3497}}}`

func TestFetchRange(t *testing.T) {
	client := &http.Client{Transport: canned{
		"/2018/07/27/": day27,
		"/2018/07/31/": day31,
	}}

	samples, err := FetchRange(client, date.Range{
		From: date.New(2018, time.July, 27),
		To:   date.New(2018, time.July, 31),
	})
	if err != nil {
		t.Fatalf("FetchRange() error = %v", err)
	}

	// weekend and the unpublished Monday are skipped, not errors
	if len(samples) != 2 {
		t.Fatalf("FetchRange() returned %d samples, want 2", len(samples))
	}
	if samples[0].Day != date.New(2018, time.July, 27) {
		t.Errorf("first sample day = %s, want 2018-07-27", samples[0].Day)
	}
	if !samples[0].Rate.Equal(decimal.RequireFromString("62.9471")) {
		t.Errorf("first sample rate = %s, want 62.9471", samples[0].Rate)
	}
	if !samples[1].Rate.Equal(decimal.RequireFromString("62.3497")) {
		t.Errorf("second sample rate = %s, want 62.3497", samples[1].Rate)
	}
}

func TestFetchDayMalformed(t *testing.T) {
	client := &http.Client{Transport: canned{
		"/2018/07/27/": `{"Valute":{"USD":{"Value":"not a number"}}}`,
	}}
	_, err := fetchDay(client, date.New(2018, time.July, 27))
	if err == nil {
		t.Errorf("fetchDay() expected error on malformed payload, got none")
	}
}
