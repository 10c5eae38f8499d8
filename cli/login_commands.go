package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/michaelIldefonso/Rekapo-admin/internal/callback"
	"github.com/michaelIldefonso/Rekapo-admin/internal/credentials"
	"github.com/michaelIldefonso/Rekapo-admin/internal/session"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to the Rekapo admin API",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     flagServer,
			Aliases:  []string{"s"},
			Usage:    "Log into the API server at the specified address (required)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    flagBrowse,
			Aliases: []string{"b"},
			Usage: "Use the system's default web browser to complete " +
				"authentication",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of the Rekapo admin API",
	Action: logout,
}

var whoamiCommand = &cli.Command{
	Name:   "whoami",
	Usage:  "Show the identity of the current user",
	Action: whoami,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	browseToAuthURL := c.Bool(flagBrowse)

	env, err := getEnvironment()
	if err != nil {
		return err
	}

	client := getUnauthenticatedClient(address, c.Bool(flagInsecure))

	authDetails, err := client.Auth().BeginLogin(c.Context)
	if err != nil {
		return errors.Wrap(err, "error beginning login")
	}

	if err := saveConfig(
		&config{
			APIAddress: address,
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	consoleURL := env.ConsoleURL
	if consoleURL == "" {
		consoleURL = address
	}

	manager := session.NewManager(client.Auth(), credentials.NewFileStore())
	listener := callback.NewListener(
		manager,
		callback.Config{
			Address:    env.CallbackAddress,
			ConsoleURL: consoleURL,
			LoginURL:   authDetails.AuthURL,
		},
	)
	if _, err := listener.Start(); err != nil {
		return errors.Wrap(err, "error starting login callback listener")
	}
	defer func() {
		shutdownCtx, cancel :=
			context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		listener.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	if browseToAuthURL {
		var err error
		switch runtime.GOOS {
		case "linux":
			err = exec.Command("xdg-open", authDetails.AuthURL).Start()
		case "windows":
			err = exec.Command(
				"rundll32",
				"url.dll,FileProtocolHandler",
				authDetails.AuthURL,
			).Start()
		case "darwin":
			err = exec.Command("open", authDetails.AuthURL).Start()
		default:
			err = errors.New("unsupported OS")
		}
		if err != nil {
			return errors.Wrapf(
				err,
				"Error opening authentication URL using the system's default web "+
					"browser.\n\nPlease visit  %s  to complete authentication.\n",
				authDetails.AuthURL,
			)
		}
	} else {
		fmt.Printf(
			"Please visit  %s  to complete authentication.\n",
			authDetails.AuthURL,
		)
	}

	select {
	case result := <-listener.Result():
		if result.Err != nil {
			return errors.Wrap(result.Err, "login failed")
		}
		fmt.Printf("\nYou are logged in as %s.\n", result.Identity.Email)
		return nil
	case <-c.Context.Done():
		return c.Context.Err()
	}
}

func logout(c *cli.Context) error {
	if c.Args().Len() != 0 {
		return errors.New("logout requires no arguments")
	}

	manager, err := getSessionManager(c)
	if err != nil {
		return err
	}

	// Logout tears the local session down no matter what; a server-side
	// failure only merits a warning.
	if err := manager.Logout(c.Context); err != nil {
		fmt.Printf(
			"Warning: the session may not have been ended server-side: %s\n",
			err,
		)
	}

	fmt.Println("Logout was successful.")

	return nil
}

func whoami(c *cli.Context) error {
	if c.Args().Len() != 0 {
		return errors.New("whoami requires no arguments")
	}

	manager, err := requireLogin(c)
	if err != nil {
		return err
	}

	identity := manager.Snapshot().Identity
	fmt.Printf("You are logged in as %s (%s).\n", identity.Email, identity.ID)
	if identity.IsAdmin {
		fmt.Println("You have administrative privileges.")
	}

	return nil
}
