package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/pkg/config"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

// Credentials carries the upstream cookie captured at login. Every
// authenticated call replays it, mirroring the browser's
// withCredentials behaviour.
type Credentials struct {
	Cookie string
}

// Observer receives timing for every upstream call. Wired to the
// metrics service; nil is fine.
type Observer func(method, path string, status int, duration time.Duration)

// Client is the typed HTTP client for the backing REST API. It is the
// only component that talks to the network. No retries and no request
// cancellation beyond the configured timeout: a failed call surfaces an
// error and the caller's state stays as it was.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	observe Observer
}

// New builds a client for the configured upstream base URL.
func New(cfg config.UpstreamConfig, logger *zap.Logger, observe Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		observe: observe,
	}
}

// upstreamError is the JSON error body most endpoints return.
type upstreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, creds Credentials, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	return req, nil
}

// do performs the call and decodes a JSON response into out when the
// status is 2xx. Upstream 401/403 map to SESSION_EXPIRED; any other
// non-2xx becomes an UPSTREAM_ERROR carrying the body's error text.
func (c *Client) do(ctx context.Context, creds Credentials, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, creds, method, path, query, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observe != nil {
			c.observe(method, path, 0, time.Since(start))
		}
		c.logger.Warn("upstream unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnreachable.Code, appErrors.ErrUpstreamUnreachable.Status, appErrors.ErrUpstreamUnreachable.Message)
	}
	defer resp.Body.Close()

	if c.observe != nil {
		c.observe(method, path, resp.StatusCode, time.Since(start))
	}

	if err := c.checkStatus(resp, method, path); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "malformed upstream response")
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response, method, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return appErrors.Clone(appErrors.ErrSessionExpired, "")
	}

	message := decodeErrorBody(resp.Body)
	if message == "" {
		message = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
	}
	c.logger.Warn("upstream error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)
	return appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
}

func decodeErrorBody(body io.Reader) string {
	var parsed upstreamError
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&parsed); err != nil {
		return ""
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return parsed.Message
}
