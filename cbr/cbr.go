// Package cbr fetches the Russian central bank's published daily USD
// exchange rates from its JSON archive mirror. Rates are published on
// trading days only; absent days are simply skipped, the rate table's
// forward-fill covers them.
package cbr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/fantamp/ibtax"
	"github.com/fantamp/ibtax/date"
	"github.com/shopspring/decimal"
)

/*
	Archive payload, one document per published day:

	{
	    "Date": "2018-07-27T11:30:00+03:00",
	    "Valute": {
	        "USD": {
	            "CharCode": "USD",
	            "Nominal": 1,
	            "Value": 62.9471
	        },
	        ...
	    }
	}
*/

const archiveBase = "https://www.cbr-xml-daily.ru/archive"

// usdPath extracts the USD rate from the daily document.
const usdPath = "$.Valute.USD.Value"

// errNotPublished marks days with no published rate (weekends, holidays).
var errNotPublished = errors.New("no rate published")

// fetchDay returns the published USD rate for one day, or
// errNotPublished when the bank published nothing that day.
func fetchDay(client *http.Client, day date.Date) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/%04d/%02d/%02d/daily_json.js", archiveBase, day.Year(), int(day.Month()), day.Day())

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Decimal{}, err
	}
	jval, err := jsonpath.Get(usdPath, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing rate for %s: %q %w", day, usdPath, err)
	}
	// because jsonpath is never clear about whether it returns a list of
	// one answer or a single answer, keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("error parsing rate for %s: %q not a number: %v", day, usdPath, jval)
	}
	return decimal.NewFromFloat(val), nil
}

// FetchRange downloads the USD rate for every published day in the
// inclusive range and returns the samples in chronological order.
func FetchRange(client *http.Client, r date.Range) ([]ibtax.RateSample, error) {
	var samples []ibtax.RateSample
	for day := r.From; !day.After(r.To); day = day.Add(1) {
		rate, err := fetchDay(client, day)
		if errors.Is(err, errNotPublished) {
			continue
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, ibtax.RateSample{Day: day, Rate: rate})
	}
	return samples, nil
}
