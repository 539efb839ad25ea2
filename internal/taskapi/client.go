// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package taskapi

import (
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
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the task service client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadRequest
	ErrTypeServer
	ErrTypeInvalidResponse
)

// ErrTimeout is returned when a request exceeds its deadline.
var ErrTimeout = &ClientError{Type: ErrTypeTimeout, Message: "request to task service timed out"}

// maxErrorBody bounds how much of an error response body is kept.
const maxErrorBody = 4096

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the task service client.
type ClientConfig struct {
	// BaseURL is the task service base URL (default: http://localhost:8080)
	BaseURL string

	// Timeout for each request (default: 10s)
	Timeout time.Duration

	// RequestsPerSecond caps outgoing requests; 0 disables the limit
	RequestsPerSecond float64

	// UserAgent sent with every request (default: tasks-cli)
	UserAgent string

	// Logger receives request diagnostics; nil disables logging
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "http://localhost:8080",
		Timeout:   10 * time.Second,
		UserAgent: "tasks-cli",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client queries the task service.
//
// Example:
//
//	client := taskapi.NewClient()
//	tasks, err := client.ListTasks(ctx, "2024-01-01")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// TASK OPERATIONS
// =============================================================================

// ListTasks returns the tasks scheduled for date, in service order.
// The date is passed through unvalidated; the service owns format checks.
func (c *Client) ListTasks(ctx context.Context, date string) ([]Task, error) {
	if strings.TrimSpace(date) == "" {
		return nil, &ClientError{Type: ErrTypeBadRequest, Message: "date parameter is required"}
	}

	resp, err := c.get(ctx, "/tasks", url.Values{"date": {date}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tasks []Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return tasks, nil
}

// Ping checks that the service answers a task query and returns the
// round-trip latency.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	resp, err := c.get(ctx, "/tasks", url.Values{"date": {start.Format(DateLayout)}})
	if err != nil {
		return 0, err
	}
	drainAndClose(resp.Body)
	return time.Since(start), nil
}

// get performs a GET request and returns the response when the status is
// 2xx. Any other outcome is returned as a *ClientError.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait aborted", Cause: err}
		}
	}

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("task service request failed",
			zap.String("url", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{
			Type:    ErrTypeConnection,
			Message: "could not reach task service at " + c.config.BaseURL,
			Cause:   err,
		}
	}

	c.logger.Debug("task service request",
		zap.String("method", req.Method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer drainAndClose(resp.Body)
		return nil, statusError(resp)
	}
	return resp, nil
}

// statusError converts a non-2xx response into a ClientError carrying the
// service's plain-text message.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))

	errType := ErrTypeServer
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		errType = ErrTypeBadRequest
	}

	message := fmt.Sprintf("task service returned %s", resp.Status)
	if msg != "" {
		message += ": " + msg
	}
	return &ClientError{Type: errType, Message: message, StatusCode: resp.StatusCode}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return hasType(err, ErrTypeTimeout)
}

// IsConnection checks if an error means the service could not be reached.
func IsConnection(err error) bool {
	return hasType(err, ErrTypeConnection)
}

// IsBadRequest checks if the service rejected the request.
func IsBadRequest(err error) bool {
	return hasType(err, ErrTypeBadRequest)
}

func hasType(err error, t ErrorType) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == t
	}
	return false
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
