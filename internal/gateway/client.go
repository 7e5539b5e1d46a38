// Package gateway implements the HTTP client for the authoritative meal API.
// The upstream answers either a payload (object or array) or a failure body
// carrying a human-readable message under "message", "error" or "errors" —
// sometimes with a 2xx status. The client normalises all of that into a slice
// of raw JSON documents or a typed error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ifcampus/meal-gateway/pkg/config"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

// Observer receives timing for every upstream call.
type Observer interface {
	ObserveUpstreamRequest(method, path string, status int, duration time.Duration)
}

// Client talks to the upstream meal API.
type Client struct {
	http     *http.Client
	baseURL  string
	logger   *zap.Logger
	observer Observer
}

// New builds a client for the configured upstream. The observer may be nil.
func New(cfg config.UpstreamConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  cfg.BaseURL,
		logger:   logger,
		observer: observer,
	}
}

// Get performs an authenticated GET. The bearer token may be empty for
// public routes such as login.
func (c *Client) Get(ctx context.Context, token, path string) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, token, path, nil)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, token, path, body)
}

// Put performs an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, token, path, body)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, token, path string) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, token, path, nil)
}

func (c *Client) do(ctx context.Context, method, token, path string, body interface{}) ([]json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observer != nil {
			c.observer.ObserveUpstreamRequest(method, path, 0, time.Since(start))
		}
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(method, path, resp.StatusCode, time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}

	// Authentication expiry is special-cased so the client can tear the
	// session down instead of showing an inline error.
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "")
	}

	return c.decode(resp.StatusCode, raw)
}

func (c *Client) decode(status int, raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		if status >= 200 && status < 300 {
			return nil, nil
		}
		return nil, appErrors.Clone(appErrors.ErrUpstreamRejected, fallbackMessage(status))
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, appErrors.ErrUpstreamMalformed.Message)
		}
		if status < 200 || status >= 300 {
			return nil, appErrors.Clone(appErrors.ErrUpstreamRejected, fallbackMessage(status))
		}
		return items, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, appErrors.ErrUpstreamMalformed.Message)
		}

		// Bodies carrying message/error/errors keys are failures even on
		// 2xx, and a 202 means the payload had invalid fields. Quirks of
		// the upstream API.
		message, isFailure := extractMessage(obj)
		if isFailure || status == http.StatusAccepted || status < 200 || status >= 300 {
			if message == "" {
				message = fallbackMessage(status)
			}
			return nil, appErrors.Clone(appErrors.ErrUpstreamRejected, message)
		}

		// Single objects are wrapped so callers always see a list.
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrUpstreamMalformed, "")
	}
}

// extractMessage pulls the failure message out of an upstream error body.
// Preference order mirrors the upstream's shapes: a validation "errors"
// bag, a plain "error" string, then "message".
func extractMessage(obj map[string]json.RawMessage) (string, bool) {
	if raw, ok := obj["errors"]; ok {
		var bag []map[string][]string
		if err := json.Unmarshal(raw, &bag); err == nil && len(bag) > 0 {
			for _, messages := range bag[0] {
				if len(messages) > 0 {
					return messages[0], true
				}
			}
		}
		return "", true
	}
	if raw, ok := obj["error"]; ok {
		var s string
		_ = json.Unmarshal(raw, &s)
		return s, true
	}
	if raw, ok := obj["message"]; ok {
		var s string
		_ = json.Unmarshal(raw, &s)
		return s, true
	}
	return "", false
}

func fallbackMessage(status int) string {
	return fmt.Sprintf("meal service returned status %d", status)
}
