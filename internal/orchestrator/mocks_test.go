// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"

	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/stretchr/testify/mock"
)

// MockBackendAPI is a shared mock implementation of BackendAPI.
type MockBackendAPI struct {
	mock.Mock
}

func (m *MockBackendAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockBackendAPI) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockBackendAPI) SendMessage(ctx context.Context, projectID, text string) (*models.ChatReply, error) {
	args := m.Called(ctx, projectID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatReply), args.Error(1)
}

// MockStreamingAPI adds an event stream to MockBackendAPI.
type MockStreamingAPI struct {
	MockBackendAPI
	events []protocol.Event
	err    error
}

func (m *MockStreamingAPI) WatchEvents(ctx context.Context, handler func(protocol.Event)) error {
	for _, e := range m.events {
		handler(e)
	}
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return ctx.Err()
}
