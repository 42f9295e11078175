// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/go-chi/chi/v5"
)

// Store is the persistence the handlers need.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	RecordChat(ctx context.Context, projectID, message, reply string) (*models.ChatRecord, error)
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	broadcaster *EventBroadcaster
	store       Store
	responder   Responder
}

func NewHandlers(broadcaster *EventBroadcaster, store Store, responder Responder) *Handlers {
	return &Handlers{broadcaster: broadcaster, store: store, responder: responder}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		getLog().Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]string{"error": msg}
	if err != nil {
		body["context"] = err.Error()
	}
	writeJSON(w, status, body)
}

// decodeJSON reads the request body into v. Oversized bodies map to 413.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// --- handlers ---

// ListProjects handles GET /api/projects. The body is always a JSON array.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load projects", err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// CreateProject handles POST /api/projects/create.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	project, err := h.store.CreateProject(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create project", err)
		return
	}

	requestLog(r).Info().Str("project_id", project.ID).Str("name", project.Name).Msg("Project created")
	h.broadcaster.Publish(protocol.NewProjectCreatedEvent(*project))
	writeJSON(w, http.StatusOK, project)
}

// Chat handles POST /api/chat/{projectId}.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	ctx := r.Context()

	project, err := h.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, models.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load project", err)
		return
	}

	var req models.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, models.ErrMessageRequired.Error(), nil)
		return
	}

	reply, err := h.responder.Reply(ctx, *project, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to produce reply", err)
		return
	}

	if _, err := h.store.RecordChat(ctx, project.ID, req.Message, reply); err != nil {
		// history is best effort
		requestLog(r).Error().Err(err).Str("project_id", project.ID).Msg("Failed to record chat exchange")
	}

	writeJSON(w, http.StatusOK, models.ChatReply{Message: reply})
}
