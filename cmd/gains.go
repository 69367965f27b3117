package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fantamp/ibtax/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct{}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains per sale, FIFO cost basis" }
func (*gainsCmd) Usage() string {
	return `ibt gains [-reports <dir>] [-rates <file>] [-currency <code>]

  Calculates realized gains for each sale, funding it from the oldest
  same-symbol buy lots first, and converts every leg at the exchange
  rate of its own date.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := buildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
