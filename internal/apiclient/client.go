// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package apiclient wraps the chat backend's HTTP API: list projects, create a
// project and send a chat message. Every failure is logged once here and
// returned to the caller as a *RequestError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/models"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/noldarim/chatdeck/internal/apiclient"

// Operation names, used for errors, logs and span names.
const (
	OpListProjects  = "list projects"
	OpCreateProject = "create project"
	OpSendMessage   = "send message"
	OpWatchEvents   = "watch events"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetClientLogger()
		log = &l
	})
	return log
}

// Client wraps REST access to the chat backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a timeout on every request. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTracerProvider uses tp instead of the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// New creates a client for the backend at rawURL (e.g. http://127.0.0.1:8080).
func New(rawURL string, opts ...Option) (*Client, error) {
	if rawURL == "" {
		rawURL = "http://127.0.0.1:8080"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q needs a scheme and host", rawURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListProjects returns every project in backend order.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.call(ctx, OpListProjects, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// CreateProject creates a project and returns it with its backend assigned id.
func (c *Client) CreateProject(ctx context.Context, payload models.CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := c.call(ctx, OpCreateProject, http.MethodPost, "/api/projects/create", payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// SendMessage posts one chat message to the given project and returns the reply.
func (c *Client) SendMessage(ctx context.Context, projectID, text string) (*models.ChatReply, error) {
	var reply models.ChatReply
	path := "/api/chat/" + url.PathEscape(projectID)
	if err := c.call(ctx, OpSendMessage, http.MethodPost, path, models.ChatRequest{Message: text}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// call runs one request inside a span and logs a failure exactly once.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "apiclient."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	req, err := c.newRequest(ctx, method, path, body)
	if err == nil {
		err = c.do(req, out)
	}
	if err != nil {
		reqErr := asRequestError(op, err)
		span.RecordError(reqErr)
		span.SetStatus(codes.Error, reqErr.Error())
		if reqErr.StatusCode != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", reqErr.StatusCode))
		}
		getLog().Error().
			Err(reqErr.Err).
			Str("op", op).
			Str("method", method).
			Str("path", path).
			Int("status", reqErr.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("Backend request failed")
		return reqErr
	}

	getLog().Debug().
		Str("op", op).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("Backend request completed")
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	resolved := c.baseURL.ResolveReference(ref)
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, resolved.String(), &buf)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("http %d", resp.StatusCode)}
		var apiErr map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			if msg, ok := apiErr["error"].(string); ok {
				httpErr.Message = msg
			}
		}
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// asRequestError stamps op on err, converting it to a *RequestError if needed.
func asRequestError(op string, err error) *RequestError {
	if reqErr, ok := err.(*RequestError); ok {
		reqErr.Op = op
		return reqErr
	}
	return &RequestError{Op: op, Err: err}
}
