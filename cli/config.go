package main

import (
	"encoding/json"
	"os"
	"path"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/michaelIldefonso/Rekapo-admin/internal/file"
)

// config is the durable console configuration. The bearer token is NOT part
// of it; the credential store owns that exclusively.
type config struct {
	APIAddress string `json:"apiAddress"`
}

// environment supplies defaults that need not be persisted.
type environment struct {
	// APIAddress overrides the configured API server address.
	APIAddress string `envconfig:"REKAPO_API_ADDRESS"`
	// CallbackAddress is where the login callback listener binds. It must
	// match the redirect target the identity backend has registered for this
	// client.
	CallbackAddress string `envconfig:"REKAPO_CALLBACK_ADDRESS" default:"127.0.0.1:8250"` // nolint: lll
	// ConsoleURL is where the browser lands after a completed login. When
	// unset, the API server address is used.
	ConsoleURL string `envconfig:"REKAPO_CONSOLE_URL"`
}

func getEnvironment() (environment, error) {
	env := environment{}
	if err := envconfig.Process("", &env); err != nil {
		return env, errors.Wrap(err, "error processing environment")
	}
	return env, nil
}

func getConfig() (*config, error) {
	rekapoHome, err := getRekapoHome()
	if err != nil {
		return nil, errors.Wrap(err, "error finding rekapo home")
	}
	rekapoConfigFile := path.Join(rekapoHome, "config")
	if !file.Exists(rekapoConfigFile) {
		return nil, errors.Errorf(
			"no rekapo-admin configuration was found at %s; please use "+
				"`rekapo-admin login` to continue\n",
			rekapoConfigFile,
		)
	}

	configBytes, err := os.ReadFile(rekapoConfigFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading rekapo-admin config file at %s",
			rekapoConfigFile,
		)
	}

	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing rekapo-admin config file at %s",
			rekapoConfigFile,
		)
	}

	return config, nil
}

func saveConfig(config *config) error {
	rekapoHome, err := getRekapoHome()
	if err != nil {
		return errors.Wrap(err, "error finding rekapo home")
	}
	if _, err = os.Stat(rekapoHome); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of rekapo home at %s",
				rekapoHome,
			)
		}
		// The directory doesn't exist-- create it
		if err = os.MkdirAll(rekapoHome, 0755); err != nil {
			return errors.Wrapf(
				err,
				"error creating rekapo home at %s",
				rekapoHome,
			)
		}
	}
	rekapoConfigFile := path.Join(rekapoHome, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err := os.WriteFile(rekapoConfigFile, configBytes, 0644); err != nil {
		return errors.Wrapf(err, "error writing to %s", rekapoConfigFile)
	}
	return nil
}

func getRekapoHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}

	return path.Join(homeDir, ".rekapo-admin"), nil
}
