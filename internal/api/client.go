// internal/api/client.go
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
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/session"
)

// Client is the generic accessor for the storefront REST API. It attaches
// the bearer token from the injected session store when one is present,
// encodes/decodes JSON bodies and maps non-2xx responses to *Error.
//
// The client performs no retries and no request cancellation beyond what
// the caller's context provides.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	userAgent  string
	logger     *logrus.Logger
}

// NewClient creates a new API client
func NewClient(cfg *config.Config, sessions session.Store, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.RequestTimeout,
		},
		sessions:  sessions,
		userAgent: cfg.API.UserAgent,
		logger:    logger,
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Sessions returns the injected session store
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// Get performs a GET request. Query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with an optional JSON body
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attach bearer token when a session is stored. A missing session is
	// not an error here; protected endpoints will answer 401.
	if sess, err := c.sessions.Load(); err == nil && sess.IsAuthenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	} else if err != nil && !errors.Is(err, session.ErrNoSession) {
		c.logger.WithError(err).Warn("Failed to load session, sending unauthenticated request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"path":       path,
		}).WithError(err).Error("API request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	entry := c.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency":     time.Since(start),
	})

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Error("Failed to read API response")
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(respBody),
			RequestID:  requestID,
		}
		if resp.StatusCode >= 500 {
			entry.WithField("error", apiErr.Message).Error("API request completed with server error")
		} else {
			entry.WithField("error", apiErr.Message).Warn("API request completed with client error")
		}
		return apiErr
	}

	entry.Debug("API request completed successfully")

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// extractErrorMessage pulls the server-supplied message out of an error
// response body. The API uses {"error": "..."} but a few endpoints answer
// with {"message": "..."}.
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return strings.TrimSpace(string(body))
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
