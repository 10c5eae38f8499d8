package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/michaelIldefonso/Rekapo-admin/internal/signals"
	"github.com/michaelIldefonso/Rekapo-admin/internal/version"
)

func main() {
	// glog logs through the standard flag set and complains on every write
	// until it has been parsed
	flag.CommandLine.Parse([]string{}) // nolint: errcheck

	app := cli.NewApp()
	app.Name = "rekapo-admin"
	app.Usage = "Administer the Rekapo platform"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		loginCommand,
		logoutCommand,
		whoamiCommand,
		userCommand,
		sessionCommand,
		systemCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
