// Package api is the typed client for the Gym PR Tracker backend.
//
// Every operation resolves with a decoded result or fails with an *Error
// carrying the HTTP status and the server's detail message. A 401 from
// any call fires the OnUnauthorized hook before the error is returned;
// that is the only cross-cutting error behavior in the client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/prtrack/internal/models"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
// *session.Store satisfies this.
type TokenSource interface {
	Token() string
}

// Error is a failed API call. Detail is the server-provided message when
// one could be decoded, otherwise the raw response body.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to the tracker server over HTTP.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// New creates a client targeting baseURL. tokens may be nil for a client
// that only performs login/register.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// OnUnauthorized registers a hook invoked whenever any call receives a
// 401. The session store's Clear goes here so that an expired credential
// logs the whole client out regardless of which call tripped it.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// do issues one request and returns the response body when the status
// matches want. Attaches the bearer token and a request ID.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, want int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read body: %w", err)
	}

	if resp.StatusCode != want {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &Error{Status: resp.StatusCode, Detail: errorDetail(respBody)}
	}

	return respBody, nil
}

// errorDetail pulls the detail field out of a FastAPI-style error body,
// falling back to the raw body when it doesn't decode.
func errorDetail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(body))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The endpoint speaks
// OAuth2 password flow, so this one call is form-encoded.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/auth/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), http.StatusOK)
	if err != nil {
		return "", err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("api: decode token: %w", err)
	}
	return tok.AccessToken, nil
}

// Register creates an account and returns a bearer token for it.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("api: marshal register: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/register",
		"application/json", bytes.NewReader(payload), http.StatusOK)
	if err != nil {
		return "", err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("api: decode token: %w", err)
	}
	return tok.AccessToken, nil
}

// ListRecords fetches the full PR collection for the current user.
func (c *Client) ListRecords(ctx context.Context) ([]models.PersonalRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/prs", "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var records []models.PersonalRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("api: decode records: %w", err)
	}
	return records, nil
}

// GetRecord fetches a single PR by id.
func (c *Client) GetRecord(ctx context.Context, id int) (*models.PersonalRecord, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/prs/%d", id), "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var record models.PersonalRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("api: decode record: %w", err)
	}
	return &record, nil
}

// CreateRecord logs a new PR. The server assigns id and timestamp.
func (c *Client) CreateRecord(ctx context.Context, draft models.RecordDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("api: marshal draft: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/prs",
		"application/json", bytes.NewReader(payload), http.StatusCreated)
	return err
}

// UpdateRecord applies a partial update to an existing PR.
func (c *Client) UpdateRecord(ctx context.Context, id int, update models.RecordUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("api: marshal update: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, fmt.Sprintf("/prs/%d", id),
		"application/json", bytes.NewReader(payload), http.StatusOK)
	return err
}

// DeleteRecord removes a PR by id.
func (c *Client) DeleteRecord(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/prs/%d", id), "", nil, http.StatusNoContent)
	return err
}

// ListMilestones fetches the server-computed achievement progress.
func (c *Client) ListMilestones(ctx context.Context) ([]models.Milestone, error) {
	body, err := c.do(ctx, http.MethodGet, "/milestones", "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var milestones []models.Milestone
	if err := json.Unmarshal(body, &milestones); err != nil {
		return nil, fmt.Errorf("api: decode milestones: %w", err)
	}
	return milestones, nil
}

// GenerateRoutine asks the AI coach for a workout plan.
func (c *Client) GenerateRoutine(ctx context.Context, req models.RoutineRequest) (*models.WorkoutPlan, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("api: marshal routine request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/ai/generate_routine",
		"application/json", bytes.NewReader(payload), http.StatusOK)
	if err != nil {
		return nil, err
	}

	var plan models.WorkoutPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("api: decode workout plan: %w", err)
	}
	return &plan, nil
}
