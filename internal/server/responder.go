// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"

	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/models"
)

// Responder produces the assistant reply for one chat message.
type Responder interface {
	Reply(ctx context.Context, project models.Project, message string) (string, error)
}

// EchoResponder answers every message by repeating it back.
type EchoResponder struct {
	Prefix string
}

// Reply returns "[<project name>] <prefix><message>".
func (e EchoResponder) Reply(ctx context.Context, project models.Project, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s] %s%s", project.Name, e.Prefix, message), nil
}

// NewResponder builds the responder selected by cfg.Kind.
func NewResponder(cfg config.ResponderConfig) (Responder, error) {
	switch cfg.Kind {
	case "echo", "":
		return EchoResponder{Prefix: cfg.Prefix}, nil
	default:
		return nil, fmt.Errorf("unsupported responder kind: %s", cfg.Kind)
	}
}
