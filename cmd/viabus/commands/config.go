// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/viabus-travel/viabus/cmd/viabus/cli"
)

// configCommand groups configuration inspection subcommands.
func configCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "inspect and validate the configuration",
		Subcommands: []*cli.Command{
			configValidateCommand(),
			configShowCommand(),
		},
	}
}

// configValidateCommand checks the resolved configuration and exits 1
// on failure. The findings are its output, so the failure exit carries
// no extra error line.
func configValidateCommand() *cli.Command {
	opts := &appOptions{}

	return &cli.Command{
		Name:    "validate",
		Summary: "check the configuration file for problems",
		Usage:   "viabus config validate [--config <path>]",
		Examples: []cli.Example{
			{Command: "viabus config validate --config ./viabus.yaml"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			opts.bind(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "configuration invalid:\n  %v\n", err)
				return &cli.ExitError{Code: 1}
			}
			fmt.Printf("configuration OK\n  environment: %s\n  base url:    %s\n",
				cfg.Environment, cfg.Inventory.BaseURL)
			return nil
		},
	}
}

// configShowCommand prints the effective configuration after
// environment overrides and variable expansion.
func configShowCommand() *cli.Command {
	opts := &appOptions{}

	return &cli.Command{
		Name:    "show",
		Summary: "print the effective configuration as YAML",
		Usage:   "viabus config show [--config <path>]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			opts.bind(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			os.Stdout.Write(data)
			return nil
		},
	}
}
