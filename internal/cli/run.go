// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/orchestrator"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/noldarim/chatdeck/internal/tui"
)

const channelBuffer = 100

// runTUI wires the orchestrator to the terminal UI and blocks until the UI
// exits or the process is signalled.
func (a *app) runTUI(parent context.Context) error {
	if err := logger.Initialize(&a.cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.CloseGlobal()

	mainLog := logger.GetLogger("main")
	mainLog.Info().Str("api", a.cfg.API.BaseURL).Msg("Starting chatdeck")

	client, err := a.client()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmdChan := make(chan protocol.Command, channelBuffer)
	eventChan := make(chan protocol.Event, channelBuffer)

	orch, err := orchestrator.New(cmdChan, eventChan, client, a.cfg)
	if err != nil {
		mainLog.Error().Err(err).Msg("Error creating orchestrator")
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer func() {
		mainLog.Info().Msg("Shutting down orchestrator...")
		cancel()
		if err := orch.Close(); err != nil {
			mainLog.Error().Err(err).Msg("Error closing orchestrator")
		}
	}()

	go func() {
		mainLog.Info().Msg("Starting orchestrator...")
		orch.Run(ctx)
		mainLog.Info().Msg("Orchestrator stopped")
	}()

	tuiErrChan := make(chan error, 1)
	go func() {
		mainLog.Info().Msg("Starting TUI")
		tuiErrChan <- tui.StartTUI(cmdChan, eventChan, a.cfg.TUI)
	}()

	select {
	case <-ctx.Done():
		mainLog.Info().Msg("Received signal, shutting down...")
		return nil
	case err := <-tuiErrChan:
		if err != nil {
			mainLog.Error().Err(err).Msg("Error running TUI")
			return fmt.Errorf("tui: %w", err)
		}
	}

	mainLog.Info().Msg("Application shutting down")
	return nil
}
