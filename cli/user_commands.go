package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "Manage users",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "Retrieve a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified user (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: userGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve many users",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagSearch,
					Usage: "Restrict results to users matching the search term",
				},
				&cli.BoolFlag{
					Name:  flagAdmin,
					Usage: "Restrict results to administrators",
				},
				&cli.BoolFlag{
					Name:  flagDisabled,
					Usage: "Restrict results to disabled users",
				},
				&cli.IntFlag{
					Name:  flagPage,
					Usage: "Start the listing at the specified page",
					Value: 1,
				},
				&cli.IntFlag{
					Name:  flagPageSize,
					Usage: "Retrieve the specified number of users per page",
				},
				cliFlagOutput,
			},
			Action: userList,
		},
		{
			Name:  "disable",
			Usage: "Disable a user's access",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Disable the specified user (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:     flagReason,
					Aliases:  []string{"r"},
					Usage:    "Record the reason for disabling the user (required)",
					Required: true,
				},
			},
			Action: userDisable,
		},
		{
			Name:  "enable",
			Usage: "Restore a disabled user's access",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Enable the specified user (required)",
					Required: true,
				},
			},
			Action: userEnable,
		},
		{
			Name:  "promote",
			Usage: "Grant a user administrative privileges",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Promote the specified user (required)",
					Required: true,
				},
			},
			Action: userPromote,
		},
		{
			Name:  "demote",
			Usage: "Revoke a user's administrative privileges",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Demote the specified user (required)",
					Required: true,
				},
			},
			Action: userDemote,
		},
		{
			Name:  "delete",
			Usage: "Permanently delete a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Delete the specified user (required)",
					Required: true,
				},
				&cli.BoolFlag{
					Name:    flagYes,
					Aliases: []string{"y"},
					Usage:   "Non-interactively confirm deletion",
				},
			},
			Action: userDelete,
		},
	},
}

func userList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	selector := api.UserSelector{
		Search: c.String(flagSearch),
	}
	if c.IsSet(flagAdmin) {
		isAdmin := c.Bool(flagAdmin)
		selector.IsAdmin = &isAdmin
	}
	if c.IsSet(flagDisabled) {
		isDisabled := c.Bool(flagDisabled)
		selector.IsDisabled = &isDisabled
	}

	opts := api.ListOptions{
		Page:     c.Int(flagPage),
		PageSize: c.Int(flagPageSize),
	}

	for {
		users, err := client.Users().List(c.Context, selector, opts)
		if err != nil {
			return err
		}

		if len(users.Items) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		switch strings.ToLower(output) {
		case "table":
			table := uitable.New()
			table.AddRow("ID", "EMAIL", "NAME", "ADMIN?", "DISABLED?", "FIRST SEEN")
			for _, user := range users.Items {
				table.AddRow(
					user.ID,
					user.Email,
					user.Name,
					user.IsAdmin,
					user.IsDisabled,
					user.Created,
				)
			}
			fmt.Println(table)

		case "yaml":
			yamlBytes, err := yaml.Marshal(users)
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from get users operation",
				)
			}
			fmt.Println(string(yamlBytes))

		case "json":
			prettyJSON, err := json.MarshalIndent(users, "", "  ")
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from get users operation",
				)
			}
			fmt.Println(string(prettyJSON))
		}

		remaining := users.Total - users.Page*users.PageSize
		if remaining < 1 {
			break
		}

		// Exit after one page of output if this isn't a terminal
		if !terminal.IsTerminal(int(os.Stdout.Fd())) {
			break
		}

		var shouldContinue bool
		fmt.Println()
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf(
					"%d results remain. Fetch more?",
					remaining,
				),
			},
			&shouldContinue,
		); err != nil {
			return errors.Wrap(
				err,
				"error confirming if user wishes to continue",
			)
		}
		fmt.Println()
		if !shouldContinue {
			break
		}

		opts.Page = users.Page + 1
	}

	return nil
}

func userGet(c *cli.Context) error {
	id := c.String(flagID)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	user, err := client.Users().Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "EMAIL", "NAME", "ADMIN?", "DISABLED?", "FIRST SEEN")
		table.AddRow(
			user.ID,
			user.Email,
			user.Name,
			user.IsAdmin,
			user.IsDisabled,
			user.Created,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(user)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get user operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get user operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func userDisable(c *cli.Context) error {
	id := c.String(flagID)
	reason := c.String(flagReason)

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	if err := client.Users().Disable(c.Context, id, reason); err != nil {
		return err
	}

	fmt.Printf("User %q disabled.\n", id)

	return nil
}

func userEnable(c *cli.Context) error {
	id := c.String(flagID)

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	if err := client.Users().Enable(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("User %q enabled.\n", id)

	return nil
}

func userPromote(c *cli.Context) error {
	id := c.String(flagID)

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	if err := client.Users().SetAdmin(c.Context, id, true); err != nil {
		return err
	}

	fmt.Printf("User %q promoted to administrator.\n", id)

	return nil
}

func userDemote(c *cli.Context) error {
	id := c.String(flagID)

	client, err := getGuardedClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting rekapo client")
	}

	if err := client.Users().SetAdmin(c.Context, id, false); err != nil {
		return err
	}

	fmt.Printf("User %q demoted.\n", id)

	return nil
}

func userDelete(c *cli.Context) error {
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

	if err := client.Users().Delete(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("User %q deleted.\n", id)

	return nil
}
