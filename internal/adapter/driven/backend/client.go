// Package backend implements the AuthAPI and CustomerAPI ports against the
// customer REST backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
	"github.com/ericfisherdev/sessionpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.AuthAPI     = (*Client)(nil)
	_ driven.CustomerAPI = (*Client)(nil)
)

const (
	loginPath     = "/auth/login"
	customersPath = "/customers"

	// maxBodyBytes caps how much of a response body is decoded.
	maxBodyBytes = 4 << 20
)

// Client talks to the backend over HTTP. Every call is bounded by timeout
// and is never retried.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for baseURL. A trailing slash on baseURL is ignored.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout}, baseURL, timeout, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken      string `json:"accessToken"`
	AccessTokenSnake string `json:"access_token"`
}

// Login posts credentials to /auth/login and returns the access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshaling login request: %w", err)
	}

	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPost, loginPath, bytes.NewReader(body), "")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", model.ErrInvalidCredentials
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("login: %w", model.ErrEndpointNotFound)
	case !isSuccess(resp.StatusCode):
		return "", unexpectedStatus(resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&lr); err != nil {
		if ctx.Err() != nil {
			return "", classifyTransportError(ctx, err)
		}
		return "", fmt.Errorf("decoding login response: %w", model.ErrMalformedResponse)
	}

	token := lr.AccessToken
	if token == "" {
		token = lr.AccessTokenSnake
	}
	if token == "" {
		return "", fmt.Errorf("no access token received from server: %w", model.ErrMalformedResponse)
	}

	return token, nil
}

// FetchCustomers issues GET /customers, attaching token as a bearer credential
// when it is non-empty. The body may be a bare array or an object wrapping the
// array under "customers" or "data"; any other shape yields no records.
func (c *Client) FetchCustomers(ctx context.Context, token string) ([]model.Customer, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, customersPath, nil, token)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, model.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, model.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("customers: %w", model.ErrEndpointNotFound)
	case !isSuccess(resp.StatusCode):
		return nil, unexpectedStatus(resp)
	}

	var raw any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&raw); err != nil {
		if ctx.Err() != nil {
			return nil, classifyTransportError(ctx, err)
		}
		return nil, fmt.Errorf("decoding customers response: %w", model.ErrMalformedResponse)
	}

	return normalizeCustomers(raw), nil
}

// withDeadline bounds one backend call, body decoding included.
func (c *Client) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// do builds and sends one request. Transport failures are mapped to
// ErrTimeout or ErrBackendUnreachable.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"duration", time.Since(start).Round(time.Millisecond),
			"error", err,
		)
		return nil, classifyTransportError(ctx, err)
	}

	c.logger.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"authenticated", token != "",
		"request_id", requestID,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return resp, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", model.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", model.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", model.ErrBackendUnreachable, err)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func unexpectedStatus(resp *http.Response) error {
	return &model.UnexpectedHTTPError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}
}

// normalizeCustomers accepts a bare array or a {customers|data: [...]} wrapper.
func normalizeCustomers(raw any) []model.Customer {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		if arr, ok := v["customers"].([]any); ok {
			items = arr
		} else if arr, ok := v["data"].([]any); ok {
			items = arr
		}
	}

	customers := make([]model.Customer, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			customers = append(customers, model.Customer(obj))
			continue
		}
		customers = append(customers, model.Customer{"value": item})
	}
	return customers
}
