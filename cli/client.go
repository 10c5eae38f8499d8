package main

import (
	"github.com/urfave/cli/v2"

	"github.com/michaelIldefonso/Rekapo-admin/internal/credentials"
	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

func getClient(c *cli.Context) (api.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, err
	}
	env, err := getEnvironment()
	if err != nil {
		return nil, err
	}
	apiAddress := config.APIAddress
	if env.APIAddress != "" {
		apiAddress = env.APIAddress
	}

	token, ok := credentials.NewFileStore().Get()
	if !ok {
		token = ""
	}

	return api.NewClient(
		apiAddress,
		token,
		c.Bool(flagInsecure),
	), nil
}

// getUnauthenticatedClient is used by login before any credential exists.
func getUnauthenticatedClient(
	apiAddress string,
	allowInsecure bool,
) api.Client {
	return api.NewClient(apiAddress, "", allowInsecure)
}
