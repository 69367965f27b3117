package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fantamp/ibtax"
	"github.com/fantamp/ibtax/cbr"
	"github.com/fantamp/ibtax/date"
	"github.com/google/subcommands"
)

// fetchRatesCmd holds the flags for the 'fetch-rates' subcommand.
type fetchRatesCmd struct {
	start string
	end   string
}

func (*fetchRatesCmd) Name() string     { return "fetch-rates" }
func (*fetchRatesCmd) Synopsis() string { return "update the local rate feed from the central bank archive" }
func (*fetchRatesCmd) Usage() string {
	return `ibt fetch-rates [-s <date>] [-d <date>] [-rates <file>]

  Downloads the published daily USD rates and appends them to the local
  feed file. By default it resumes after the last day already in the
  feed and stops at today. Days with no published rate are skipped; the
  rate table forward-fills them at build time.
`
}

func (c *fetchRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "First day to fetch (default: day after the last one in the feed)")
	f.StringVar(&c.end, "d", date.Today().String(), "Last day to fetch")
}

func (c *fetchRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	end, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var start date.Date
	if c.start != "" {
		start, err = date.Parse(c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	} else {
		existing, err := readFeed(*ratesFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if len(existing) == 0 {
			fmt.Fprintln(os.Stderr, "empty feed: pass -s to choose the first day to fetch")
			return subcommands.ExitUsageError
		}
		start = existing[len(existing)-1].Day.Add(1)
	}
	if start.After(end) {
		fmt.Println("feed is already up to date")
		return subcommands.ExitSuccess
	}

	samples, err := cbr.FetchRange(cbr.Client(), date.Range{From: start, To: end})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := appendFeed(*ratesFile, samples); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Appended %d samples to %s\n", len(samples), *ratesFile)
	return subcommands.ExitSuccess
}

func readFeed(path string) ([]ibtax.RateSample, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ibtax.ParseRateSamples(f)
}

// appendFeed writes samples in the feed's own format: day, tab, rate
// with a decimal comma.
func appendFeed(path string, samples []ibtax.RateSample) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, s := range samples {
		rate := strings.ReplaceAll(s.Rate.String(), ".", ",")
		if _, err := fmt.Fprintf(f, "%02d.%02d.%04d\t%s\n", s.Day.Day(), int(s.Day.Month()), s.Day.Year(), rate); err != nil {
			return err
		}
	}
	return nil
}
