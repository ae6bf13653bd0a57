// Package client talks to the LeadFlow HTTP API on behalf of the session
// agent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leadflow/leadflow-backend/internal/session"
)

var (
	// ErrInvalidCredentials means the server refused the login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized means the token was rejected.
	ErrUnauthorized = errors.New("not authorized")
	// ErrUnavailable means the server could not be reached or failed.
	ErrUnavailable = errors.New("api unavailable")
)

// Client is a minimal API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a client for the API rooted at baseURL, e.g.
// http://localhost:5000/api.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "api_client"),
	}
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string
	User  session.User
}

type loginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type loginResponse struct {
	session.User
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login authenticates with an email address or a display name.
func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	body := loginRequest{Password: password}
	if strings.Contains(identifier, "@") {
		body.Email = identifier
	} else {
		body.Username = identifier
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, readError(resp))
	default:
		return nil, fmt.Errorf("%w: login: status %d: %s", ErrUnavailable, resp.StatusCode, readError(resp))
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode login response: %v", ErrUnavailable, err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", ErrUnavailable)
	}

	c.log.DebugContext(ctx, "logged in", slog.String("user_id", out.ID))
	return &LoginResult{Token: out.Token, User: out.User}, nil
}

// Ping reports the user as present.
func (c *Client) Ping(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodPost, "/users/ping", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: ping: status %d", ErrUnavailable, resp.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func readError(resp *http.Response) string {
	var e errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e); err != nil || e.Error == "" {
		return http.StatusText(resp.StatusCode)
	}
	return e.Error
}
