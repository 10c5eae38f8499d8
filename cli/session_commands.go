package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

var sessionCommand = &cli.Command{
	Name:  "session",
	Usage: "Manage server-side sessions",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve many sessions",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagSearch,
					Usage: "Restrict results to sessions matching the search term",
				},
				cliFlagOutput,
			},
			Action: sessionList,
		},
		{
			Name:  "metadata",
			Usage: "Retrieve the metadata attached to a session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve metadata for the specified session (required)",
					Required: true,
				},
			},
			Action: sessionMetadata,
		},
		{
			Name:  "delete",
			Usage: "Revoke a session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Delete the specified session (required)",
					Required: true,
				},
				&cli.BoolFlag{
					Name:    flagYes,
					Aliases: []string{"y"},
					Usage:   "Non-interactively confirm deletion",
				},
			},
			Action: sessionDelete,
		},
	},
}

func sessionList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	sessions, err := client.Sessions().List(
		c.Context,
		api.DirectorySessionSelector{
			Search: c.String(flagSearch),
		},
	)
	if err != nil {
		return err
	}

	if len(sessions.Items) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "USER", "DEVICE", "CREATED", "LAST ACTIVE")
		for _, session := range sessions.Items {
			table.AddRow(
				session.ID,
				session.UserID,
				session.Device,
				session.Created,
				session.LastActive,
			)
		}
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(sessions)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get sessions operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get sessions operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func sessionMetadata(c *cli.Context) error {
	id := c.String(flagID)

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	metadata, err := client.Sessions().GetMetadata(c.Context, id)
	if err != nil {
		return err
	}

	fmt.Println(metadata)

	return nil
}

func sessionDelete(c *cli.Context) error {
	id := c.String(flagID)

	ok, err := confirmed(c)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	if err := client.Sessions().Delete(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Session %q deleted.\n", id)

	return nil
}
