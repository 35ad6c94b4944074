// Package restapi implements the task.Store interface against the remote
// JSON task collection API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/oauth2"

	"github.com/duyki2208/todo-list/internal/task"
)

// CollectionPath is the task collection endpoint.
const CollectionPath = "/tasks-collection"

// Client implements task.Store over the remote collection API.
type Client struct {
	base   *url.URL
	http   *http.Client
	userID string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client (for testing, or to
// route static traffic through the resource cache transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken wraps the client transport so every request carries the
// bearer token, matching the API's Authorization requirement.
func WithToken(token string) Option {
	return func(c *Client) {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		c.http = &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: c.http.Transport},
			Timeout:   c.http.Timeout,
		}
	}
}

// WithLogger sets the logger for dropped records and fail-soft fetches.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock overrides the timestamp source (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the API at baseURL. Created tasks are owned by
// userID.
func New(baseURL, userID string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	c := &Client{
		base:   base,
		http:   &http.Client{},
		userID: userID,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) collectionURL() string {
	return c.base.JoinPath(CollectionPath).String()
}

func (c *Client) taskURL(id string) string {
	return c.base.JoinPath(CollectionPath, id).String()
}

// List retrieves the server's keyed map of tasks and normalizes it into
// an ordered slice, injecting each map key as the task ID. Malformed
// entries are dropped and logged. Transport failures and unusable
// payloads fail soft to an empty slice: a transient fetch failure must
// not crash the view.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return []task.Task{}, nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("task fetch failed", "error", err)
		return []task.Task{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("task fetch rejected", "status", resp.StatusCode, "error", readError(resp))
		return []task.Task{}, nil
	}

	var entries map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		c.logger.Warn("task payload is not an object", "error", err)
		return []task.Task{}, nil
	}

	tasks := make([]task.Task, 0, len(entries))
	for id, raw := range entries {
		if string(bytes.TrimSpace(raw)) == "null" {
			c.logger.Warn("dropping null task entry", "id", id)
			continue
		}
		var t task.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			c.logger.Warn("dropping malformed task entry", "id", id, "error", err)
			continue
		}
		t.ID = id
		tasks = append(tasks, t)
	}

	// The map carries no order; normalize to creation order with the id
	// as a total tie-break.
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Timestamp != tasks[j].Timestamp {
			return tasks[i].Timestamp < tasks[j].Timestamp
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// Create submits a draft and returns the server-assigned task. The owner,
// the completion flag and the creation timestamp are set here, not by the
// caller.
func (c *Client) Create(ctx context.Context, draft task.Draft) (task.Task, error) {
	t := task.Task{
		Text:      draft.Text,
		Date:      draft.Date,
		Completed: false,
		Timestamp: c.now().UnixMilli(),
		UserID:    c.userID,
	}

	var created task.Task
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), t, &created); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// Update replaces the identified task wholesale.
func (c *Client) Update(ctx context.Context, id string, t task.Task) (task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, c.taskURL(id), t, &updated); err != nil {
		return task.Task{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, nil
}

// Delete removes the identified task.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil)
}

// do runs a mutating request. Non-success responses become RequestError
// carrying the server's error message; transport failures propagate
// wrapped.
func (c *Client) do(ctx context.Context, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &task.RequestError{Status: resp.StatusCode, Message: readError(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readError extracts the error string from a JSON error body.
func readError(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
