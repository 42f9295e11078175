// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/noldarim/chatdeck/internal/apiclient"
	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type testServer struct {
	*Server
	URL   string
	store *store.Store
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	st, err := store.Open(&config.DatabaseConfig{
		Driver:   "sqlite",
		Database: filepath.Join(t.TempDir(), "server.db"),
	})
	require.NoError(t, err)
	require.NoError(t, st.AutoMigrate())
	t.Cleanup(func() { st.Close() })

	cfg := config.Default().Server
	cfg.MaxBodyBytes = 1024
	srv := New(&cfg, st, EchoResponder{Prefix: "You said: "}, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv.StartBroadcaster(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{Server: srv, URL: ts.URL, store: st}
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestListProjects_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, buf.String())
}

func TestCreateProject(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/projects/create", `{"name":"  Foo ","description":"Bar"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Foo", created.Name)
	assert.Equal(t, "Bar", created.Description)

	listResp, err := http.Get(ts.URL + "/api/projects")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var projects []models.Project
	decodeBody(t, listResp, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, created.ID, projects[0].ID)
}

func TestCreateProject_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "missing name", body: `{"description":"Bar"}`, wantStatus: http.StatusBadRequest, wantError: "name is required"},
		{name: "blank name", body: `{"name":"   "}`, wantStatus: http.StatusBadRequest, wantError: "name is required"},
		{name: "malformed json", body: `{"name":`, wantStatus: http.StatusBadRequest, wantError: "Invalid request body"},
		{
			name:       "oversized body",
			body:       `{"name":"` + strings.Repeat("x", 2048) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "Request body too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			resp := postJSON(t, ts.URL+"/api/projects/create", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.wantError, body["error"])

			projects, err := ts.store.ListProjects(context.Background())
			require.NoError(t, err)
			assert.Empty(t, projects)
		})
	}
}

func TestChat(t *testing.T) {
	ts := newTestServer(t)
	project, err := ts.store.CreateProject(context.Background(), models.CreateProjectRequest{Name: "Alpha"})
	require.NoError(t, err)

	resp := postJSON(t, ts.URL+"/api/chat/"+project.ID, `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply models.ChatReply
	decodeBody(t, resp, &reply)
	assert.Equal(t, "[Alpha] You said: hello", reply.Message)

	history, err := ts.store.ChatHistory(context.Background(), project.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Message)
	assert.Equal(t, reply.Message, history[0].Reply)
}

func TestChat_Errors(t *testing.T) {
	ts := newTestServer(t)
	project, err := ts.store.CreateProject(context.Background(), models.CreateProjectRequest{Name: "Alpha"})
	require.NoError(t, err)

	t.Run("unknown project", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/chat/nope", `{"message":"hello"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("blank message", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/chat/"+project.ID, `{"message":"  "}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "message is required", body["error"])
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/chat/" + project.ID)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

type failingStore struct{ Store }

var errStoreDown = errors.New("database unavailable")

func (failingStore) ListProjects(context.Context) ([]models.Project, error) {
	return nil, errStoreDown
}

func (failingStore) GetProject(context.Context, string) (*models.Project, error) {
	return nil, errStoreDown
}

func TestStoreFailures(t *testing.T) {
	cfg := config.Default().Server
	srv := New(&cfg, failingStore{}, EchoResponder{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Failed to load projects", body["error"])
	assert.Equal(t, errStoreDown.Error(), body["context"])

	chatResp := postJSON(t, ts.URL+"/api/chat/p1", `{"message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, chatResp.StatusCode)
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/projects", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "client-req-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "client-req-1", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	bad, err := http.NewRequest(http.MethodGet, ts.URL+"/api/projects", nil)
	require.NoError(t, err)
	bad.Header.Set("X-Request-ID", "bad id!")
	badResp, err := http.DefaultClient.Do(bad)
	require.NoError(t, err)
	defer badResp.Body.Close()
	assert.NotEqual(t, "bad id!", badResp.Header.Get("X-Request-ID"))
	_, parseErr := uuid.Parse(badResp.Header.Get("X-Request-ID"))
	assert.NoError(t, parseErr, "rejected ids are replaced with a generated one")
	assert.NotEmpty(t, badResp.Header.Get("X-Request-ID"))

	preflight, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/projects/create", nil)
	require.NoError(t, err)
	preResp, err := http.DefaultClient.Do(preflight)
	require.NoError(t, err)
	defer preResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, preResp.StatusCode)
}

func TestTracing_RecordsRouteSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	ts := newTestServer(t, WithTracerProvider(tp))

	resp, err := http.Get(ts.URL + "/api/projects")
	require.NoError(t, err)
	resp.Body.Close()

	// the span ends after the response has been flushed
	require.Eventually(t, func() bool { return len(recorder.Ended()) == 1 }, time.Second, 10*time.Millisecond)
	span := recorder.Ended()[0]
	assert.Equal(t, "http GET /api/projects", span.Name())
	assert.Contains(t, span.Attributes(), attribute.Int("http.status_code", http.StatusOK))
}

// TestAPIClientRoundTrip drives the server with the real client.
func TestAPIClientRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	client, err := apiclient.New(ts.URL)
	require.NoError(t, err)
	ctx := context.Background()

	projects, err := client.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	created, err := client.CreateProject(ctx, models.CreateProjectRequest{Name: "Beta", Description: "second"})
	require.NoError(t, err)
	assert.Equal(t, "Beta", created.Name)

	reply, err := client.SendMessage(ctx, created.ID, "ping")
	require.NoError(t, err)
	assert.Equal(t, "[Beta] You said: ping", reply.Message)

	_, err = client.CreateProject(ctx, models.CreateProjectRequest{Name: " "})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))

	_, err = client.SendMessage(ctx, "missing", "ping")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))
}

func TestResponder(t *testing.T) {
	r, err := NewResponder(config.ResponderConfig{Kind: "echo", Prefix: "> "})
	require.NoError(t, err)

	reply, err := r.Reply(context.Background(), models.Project{Name: "Gamma"}, "hi")
	require.NoError(t, err)
	assert.Equal(t, "[Gamma] > hi", reply)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Reply(ctx, models.Project{Name: "Gamma"}, "hi")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewResponder(config.ResponderConfig{Kind: "oracle"})
	assert.Error(t, err)
}

func TestRequestID_ExposesIDAndLogger(t *testing.T) {
	var gotID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetRequestID(r.Context())
		assert.NotNil(t, requestLog(r))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", gotID)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	assert.Empty(t, GetRequestID(context.Background()))
}
