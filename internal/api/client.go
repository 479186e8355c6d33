// Package api is the authenticated client for the clinical REST backend.
// Every protected request goes through Do, which attaches the bearer token
// and normalizes failures into the error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicops/clinic-console/internal/session"
	"github.com/clinicops/clinic-console/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// Client talks JSON over HTTP to the clinical backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *logging.Logger
	now        func() time.Time
}

// NewClient constructs a backend client. The session supplies the bearer
// token; it must not be nil.
func NewClient(baseURL string, sess *session.Session, timeout time.Duration, logger *logging.Logger) *Client {
	if sess == nil {
		panic("api: session required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
		logger:     logger,
		now:        time.Now,
	}
}

// Session exposes the session so callers can subscribe to expiry events.
func (c *Client) Session() *session.Session {
	return c.session
}

// Do performs an authenticated JSON request. A missing token fails
// immediately with KindNotAuthenticated and no network call; a 401 clears
// the token and fails with KindSessionExpired.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.session.Token(ctx)
	if err != nil {
		return wrap("load session token", err)
	}
	if token == "" {
		return NotAuthenticated()
	}
	// A locally expired JWT will be rejected anyway; skip the round trip.
	if session.TokenExpired(token, c.now()) {
		if err := c.session.Expire(ctx); err != nil {
			c.logger.Error("failed to clear expired token", "error", err)
		}
		return SessionExpired()
	}
	return c.doJSON(ctx, method, path, token, body, out)
}

// DoPublic performs an unauthenticated request (login only).
func (c *Client) DoPublic(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doJSON(ctx, method, path, "", body, out)
}

// LoginResponse is the backend's answer to POST /login. Older deployments
// return "token" instead of "access_token".
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// BearerToken returns whichever token field the backend populated.
func (r LoginResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Login authenticates against the backend and stores the issued token in
// the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return Validation("username", "username and password are required")
	}

	var resp LoginResponse
	payload := map[string]string{"username": username, "password": password}
	if err := c.DoPublic(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		return err
	}
	token := resp.BearerToken()
	if token == "" {
		return Remote(http.StatusOK, "no access token received")
	}
	if err := c.session.SetToken(ctx, token); err != nil {
		return wrap("store token", err)
	}
	c.logger.Info("login succeeded", "username", username)
	return nil
}

// Verify checks the current token against the backend's protected probe.
func (c *Client) Verify(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, "/protected", nil, nil)
}

// errorBody is the backend's JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return wrap("marshal request", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return wrap("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Network(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Network(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		if err := c.session.Expire(ctx); err != nil {
			c.logger.Error("failed to clear rejected token", "error", err)
		}
		return SessionExpired()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorBody
		_ = json.Unmarshal(respBody, &envelope)
		msg := envelope.Error
		if msg == "" && len(respBody) > 0 && len(respBody) <= 300 {
			msg = strings.TrimSpace(string(respBody))
		}
		c.logger.Warn("backend returned non-2xx", "status", resp.StatusCode, "method", method, "path", path)
		return Remote(resp.StatusCode, msg)
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return wrap("decode response", err)
	}
	return nil
}
