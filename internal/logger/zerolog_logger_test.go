// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/noldarim/chatdeck/internal/config"
	"github.com/rs/zerolog"
)

func TestNewManager(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.LogConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "console_json",
			config: &config.LogConfig{
				Level:  "info",
				Format: "json",
				Output: []config.LogOutputConfig{{Type: "console", Enabled: true}},
			},
		},
		{
			name: "plain_file",
			config: &config.LogConfig{
				Level:  "debug",
				Format: "json",
				Output: []config.LogOutputConfig{
					{Type: "file", Enabled: true, Path: filepath.Join(t.TempDir(), "chat.log")},
				},
				Context: config.LogContextConfig{IncludeTimestamp: true, IncludeCaller: true},
			},
		},
		{
			name: "rotating_file_console_format",
			config: &config.LogConfig{
				Level:  "warn",
				Format: "console",
				Output: []config.LogOutputConfig{
					{
						Type:    "file",
						Enabled: true,
						Path:    filepath.Join(t.TempDir(), "rotating.log"),
						Rotate:  config.LogRotateConfig{MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
					},
				},
			},
		},
		{
			name: "invalid_output_type",
			config: &config.LogConfig{
				Level:  "info",
				Format: "json",
				Output: []config.LogOutputConfig{{Type: "syslog", Enabled: true}},
			},
			expectError: true,
			errorMsg:    "unsupported output type: syslog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := zerolog.GlobalLevel()
			defer zerolog.SetGlobalLevel(original)

			manager, err := NewManager(tt.config)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorMsg)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer manager.Close()
		})
	}
}

func TestManager_FallbackFile(t *testing.T) {
	original := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(original)

	tempDir := t.TempDir()
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	manager, err := NewManager(&config.LogConfig{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer manager.Close()

	if _, err := os.Stat(filepath.Join(tempDir, "logs", "chatdeck-fallback.log")); os.IsNotExist(err) {
		t.Error("fallback log file was not created")
	}
	if len(manager.closers) != 1 {
		t.Errorf("expected 1 closer for the fallback file, got %d", len(manager.closers))
	}
}

func TestManager_GetLogger(t *testing.T) {
	original := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(original)

	manager, err := NewManager(&config.LogConfig{
		Level:  "trace",
		Format: "json",
		Output: []config.LogOutputConfig{{Type: "console", Enabled: true}},
		Levels: map[string]string{"client": "debug", "database": "warn"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer manager.Close()

	tests := []struct {
		pkg   string
		level zerolog.Level
	}{
		{pkg: "client", level: zerolog.DebugLevel},
		{pkg: "database", level: zerolog.WarnLevel},
		{pkg: "unconfigured", level: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			l := manager.GetLogger(tt.pkg)
			if l.GetLevel() != tt.level {
				t.Errorf("expected level %s, got %s", tt.level, l.GetLevel())
			}

			var buf bytes.Buffer
			out := l.Output(&buf)
			out.WithLevel(tt.level).Msg("hello")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse log JSON: %v", err)
			}
			if entry["pkg"] != tt.pkg {
				t.Errorf("expected pkg=%q, got %v", tt.pkg, entry["pkg"])
			}
		})
	}
}

func TestManager_SetPackageLevel(t *testing.T) {
	original := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(original)

	manager, err := NewManager(&config.LogConfig{
		Level:  "info",
		Format: "json",
		Output: []config.LogOutputConfig{{Type: "console", Enabled: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer manager.Close()

	manager.GetLogger("tui")
	manager.SetPackageLevel("tui", "error")

	if manager.config.Levels["tui"] != "error" {
		t.Errorf("expected config level 'error', got %q", manager.config.Levels["tui"])
	}

	var buf bytes.Buffer
	l := manager.GetLogger("tui").Output(&buf)
	l.Warn().Msg("suppressed")
	if buf.Len() != 0 {
		t.Error("warn message should not appear when level is error")
	}
	l.Error().Msg("shown")
	if buf.Len() == 0 {
		t.Error("error message should appear when level is error")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	original := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(original)

	manager, err := NewManager(&config.LogConfig{
		Level:  "info",
		Format: "json",
		Output: []config.LogOutputConfig{
			{Type: "file", Enabled: true, Path: filepath.Join(t.TempDir(), "concurrent.log")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer manager.Close()

	const workers = 50
	const packages = 5

	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			l := manager.GetLogger(fmt.Sprintf("pkg%d", i%packages))
			l.Info().Int("worker", i).Msg("concurrent")
		}(i)
		go func(i int) {
			defer wg.Done()
			manager.SetPackageLevel(fmt.Sprintf("pkg%d", i%packages), []string{"debug", "info", "warn"}[i%3])
		}(i)
	}
	wg.Wait()

	manager.mu.RLock()
	defer manager.mu.RUnlock()
	if len(manager.packageLoggers) != packages {
		t.Errorf("expected %d package loggers, got %d", packages, len(manager.packageLoggers))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"Info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestGetLogger_BeforeInitialize(t *testing.T) {
	if globalManager != nil {
		t.Skip("global manager already initialized by another test")
	}
	l := GetLogger("anything")
	// Must not panic and must not write anywhere visible.
	l.Info().Msg("discarded")
}
