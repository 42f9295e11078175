// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/server"
	"github.com/noldarim/chatdeck/internal/store"
	"github.com/noldarim/chatdeck/internal/telemetry"

	"github.com/spf13/cobra"
)

type serverOptions struct {
	configPath string
	migrate    bool
}

func main() {
	opts := &serverOptions{}

	cmd := &cobra.Command{
		Use:           "chatdeck-server",
		Short:         "Reference backend for chatdeck",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "Create or update the database schema before serving")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *serverOptions) error {
	cfg, err := config.NewConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.Initialize(&cfg.Log); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.CloseGlobal()

	mainLog := logger.GetLogger("main")
	mainLog.Info().Msg("Starting chatdeck API server")

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			mainLog.Error().Err(err).Msg("Error flushing telemetry")
		}
	}()

	st, err := store.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	if opts.migrate {
		mainLog.Info().Str("driver", cfg.Database.Driver).Msg("Running database migration")
		if err := st.AutoMigrate(); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}
	if err := st.ValidateSchema(); err != nil {
		return err
	}

	responder, err := server.NewResponder(cfg.Responder)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := server.New(&cfg.Server, st, responder)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- srv.Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		mainLog.Info().Msgf("Received signal %v, shutting down...", sig)
	case runErr = <-serverErrChan:
		if runErr != nil {
			mainLog.Error().Err(runErr).Msg("Server error")
		}
	}

	// Fresh context: the run context is about to be cancelled.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.Error().Err(err).Msg("Error shutting down server")
	}
	cancel()

	mainLog.Info().Msg("API server shut down")
	return runErr
}
