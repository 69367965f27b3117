package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fantamp/ibtax/renderer"
	"github.com/google/subcommands"
)

// dividendsCmd holds the flags for the 'dividends' subcommand.
type dividendsCmd struct{}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "dividend income reconciled with withholding tax" }
func (*dividendsCmd) Usage() string {
	return `ibt dividends [-reports <dir>] [-rates <file>] [-currency <code>]

  Joins every dividend with the withholding entries of the same symbol
  and date, and reports gross, withheld and net income. Withholdings
  without a matching dividend are listed for manual review.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.DividendsMarkdown(report))
	return subcommands.ExitSuccess
}
