// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"strings"
	"time"

	"github.com/noldarim/chatdeck/internal/models"

	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

// withTimeout bounds one-shot commands when no transport timeout is configured.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.API.Timeout > 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, requestTimeout)
}

func newProjectsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return err
			}
			return printProjects(cmd.OutOrStdout(), projects, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(formatTable), "Output format: table, json or yaml")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}
			req := models.CreateProjectRequest{Name: name, Description: description}
			if err := req.Validate(); err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			project, err := client.CreateProject(ctx, req)
			if err != nil {
				return err
			}
			if format == formatTable {
				writeLine(cmd.OutOrStdout(), "Created project %s (%s)", project.Name, project.ID)
				return nil
			}
			return printProject(cmd.OutOrStdout(), *project, format)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringVarP(&output, "output", "o", string(formatTable), "Output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSendCmd(a *app) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "send --project ID message...",
		Short: "Send one chat message to a project and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return models.ErrMessageRequired
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			reply, err := client.SendMessage(ctx, projectID, text)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "%s", reply.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
