package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fantamp/ibtax"
	"github.com/fantamp/ibtax/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "buy lots left unsold after FIFO matching" }
func (*lotsCmd) Usage() string {
	return `ibt lots [-reports <dir>]

  Lists the buy lots (or what is left of them) that no sale has
  consumed yet. These carry next year's cost basis.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadStatements()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	_, remaining, err := ibtax.Match(s.Trades)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LotsMarkdown(remaining))
	return subcommands.ExitSuccess
}
