package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var systemCommand = &cli.Command{
	Name:  "system",
	Usage: "Query system-level information",
	Subcommands: []*cli.Command{
		{
			Name:  "stats",
			Usage: "Retrieve system-wide statistics",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: systemStats,
		},
	},
}

func systemStats(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	stats, err := client.System().Stats(c.Context)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("TOTAL USERS", "ACTIVE SESSIONS", "LAST LOGIN", "LOAD")
		table.AddRow(
			stats.TotalUsers,
			stats.ActiveSessions,
			stats.LastLogin,
			stats.SystemLoad,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(stats)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get statistics operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get statistics operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
