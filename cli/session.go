package main

import (
	"github.com/urfave/cli/v2"

	"github.com/michaelIldefonso/Rekapo-admin/internal/credentials"
	"github.com/michaelIldefonso/Rekapo-admin/internal/guard"
	"github.com/michaelIldefonso/Rekapo-admin/internal/session"
	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

func getSessionManager(c *cli.Context) (*session.Manager, error) {
	client, err := getClient(c)
	if err != nil {
		return nil, err
	}
	return session.NewManager(
		client.Auth(),
		credentials.NewFileStore(),
	), nil
}

// requireLogin restores the stored session, if any, and admits the command
// only when the restored session is authenticated.
func requireLogin(c *cli.Context) (*session.Manager, error) {
	manager, err := getSessionManager(c)
	if err != nil {
		return nil, err
	}
	if err := manager.Init(c.Context); err != nil {
		return nil, err
	}
	if err := guard.Check(manager.Snapshot()); err != nil {
		return nil, err
	}
	return manager, nil
}

// getGuardedClient returns a client only after the stored session has been
// restored and admitted.
func getGuardedClient(c *cli.Context) (api.Client, error) {
	client, err := getClient(c)
	if err != nil {
		return nil, err
	}
	manager := session.NewManager(
		client.Auth(),
		credentials.NewFileStore(),
	)
	if err := manager.Init(c.Context); err != nil {
		return nil, err
	}
	if err := guard.Check(manager.Snapshot()); err != nil {
		return nil, err
	}
	return client, nil
}
