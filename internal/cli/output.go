// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/noldarim/chatdeck/internal/models"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", s)
	}
}

// projectView is the stable external shape of a project.
type projectView struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func toView(p models.Project) projectView {
	return projectView{ID: p.ID, Name: p.Name, Description: p.Description}
}

func printProjects(w io.Writer, projects []models.Project, format outputFormat) error {
	views := lo.Map(projects, func(p models.Project, _ int) projectView { return toView(p) })

	switch format {
	case formatJSON:
		return encodeJSON(w, views)
	case formatYAML:
		return encodeYAML(w, views)
	}

	if len(views) == 0 {
		writeLine(w, "No projects found.")
		writeLine(w, "Create one with: %s create --name <name>", appName)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, truncate(v.Name, 30), truncate(v.Description, 50))
	}
	return tw.Flush()
}

func printProject(w io.Writer, p models.Project, format outputFormat) error {
	if format == formatYAML {
		return encodeYAML(w, toView(p))
	}
	return encodeJSON(w, toView(p))
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
