// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the chatdeck command line: the interactive TUI by default,
// plus a few one-shot commands that talk to the backend directly.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/noldarim/chatdeck/internal/apiclient"
	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/telemetry"

	"github.com/spf13/cobra"
)

const appName = "chatdeck"

// appVersion is overridden at build time with -ldflags "-X ...".
var appVersion = "0.1.0-dev"

// app carries state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	apiURL     string

	cfg      *config.AppConfig
	shutdown telemetry.ShutdownFunc
}

// Execute runs the CLI application
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Chat with your projects from the terminal",
		Long:          "chatdeck lists projects, lets you create new ones and chat with a selected project.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to config file")
	cmd.PersistentFlags().StringVarP(&a.apiURL, "api", "a", "", "Backend base URL (overrides api.base_url)")

	cmd.AddCommand(newProjectsCmd(a))
	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newSendCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no config
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
}

// load reads configuration, applies flag overrides and installs telemetry.
func (a *app) load(ctx context.Context) error {
	cfg, err := config.NewConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	a.cfg = cfg

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	a.shutdown = shutdown
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	if err := a.shutdown(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("failed to flush telemetry: %w", err)
	}
	return nil
}

func (a *app) client() (*apiclient.Client, error) {
	c, err := apiclient.New(a.cfg.API.BaseURL, apiclient.WithTimeout(a.cfg.API.Timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	return c, nil
}

func writeLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
