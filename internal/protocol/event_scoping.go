// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

// GetProjectID methods let the API server's WebSocket filter match events
// without maintaining an exhaustive type switch.

func (e ProjectCreatedEvent) GetProjectID() string { return e.Project.ID }
func (e MessageReplyEvent) GetProjectID() string   { return e.ProjectID }
func (e MessageFailedEvent) GetProjectID() string  { return e.ProjectID }
