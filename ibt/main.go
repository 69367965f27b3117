package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/fantamp/ibtax/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and returns immediately
// in a normal run.
func completion() {
	shared := map[string]complete.Predictor{
		"reports":        predict.Dirs("*"),
		"rates":          predict.Files("*.dat"),
		"currency":       predict.Set{"RUB", "EUR", "USD"},
		"trade-currency": predict.Set{"USD", "EUR"},
	}
	c := &complete.Command{
		Flags: shared,
		Sub: map[string]*complete.Command{
			"report":      {Flags: shared},
			"gains":       {Flags: shared},
			"dividends":   {Flags: shared},
			"lots":        {Flags: shared},
			"fetch-rates": {Flags: map[string]complete.Predictor{"s": predict.Nothing, "d": predict.Nothing, "rates": predict.Files("*.dat")}},
		},
	}
	c.Complete("ibt")
}
