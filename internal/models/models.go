// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package models holds the data shared by the client, the TUI and the
// reference backend. The JSON tags are the wire contract with the backend.
package models

import (
	"strings"
	"time"
)

// Project is a named, described unit that scopes a chat conversation.
// It doubles as the GORM model for the projects table.
type Project struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Name        string    `gorm:"not null;type:text" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"-"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ChatRecord is one stored request/reply exchange.
type ChatRecord struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	ProjectID string    `gorm:"not null;type:text;index" json:"project_id"`
	Message   string    `gorm:"type:text" json:"message"`
	Reply     string    `gorm:"type:text" json:"reply"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ChatRecord
func (ChatRecord) TableName() string {
	return "chat_messages"
}

// ChatMessage is a single transcript entry. It is rendered and then dropped;
// nothing keeps it once the transcript is cleared.
type ChatMessage struct {
	Text   string
	IsUser bool
}

// CreateProjectRequest is the body of POST /api/projects/create.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate reports whether the request carries a usable name.
func (r CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// ChatRequest is the body of POST /api/chat/{projectId}.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the response of POST /api/chat/{projectId}.
type ChatReply struct {
	Message string `json:"message"`
}
