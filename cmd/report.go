package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fantamp/ibtax/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full tax report: gains, remaining lots and dividends" }
func (*reportCmd) Usage() string {
	return `ibt report [-reports <dir>] [-rates <file>] [-currency <code>]

  Matches all sales against prior buys using FIFO, reconciles dividends
  with withholding tax, and prints the complete report with figures in
  both the trade currency and the reporting currency.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TaxReportMarkdown(report))
	return subcommands.ExitSuccess
}
