package main

import "github.com/urfave/cli/v2"

const (
	flagAdmin    = "admin"
	flagBrowse   = "browse"
	flagDisabled = "disabled"
	flagID       = "id"
	flagInsecure = "insecure"
	flagOutput   = "output"
	flagPage     = "page"
	flagPageSize = "page-size"
	flagReason   = "reason"
	flagSearch   = "search"
	flagServer   = "server"
	flagYes      = "yes"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: " +
			"table, yaml, json",
		Value: "table",
	}
)
