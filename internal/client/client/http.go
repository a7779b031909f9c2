package client

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

	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// HTTPClient implements Client over JSON/HTTP. The bearer token is read
// from the Session on every request, and a 401 invalidates the session.
type HTTPClient struct {
	baseURL *url.URL
	hc      *http.Client
	session Session
	logger  logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for baseURL (e.g. "https://rent.example/api").
func NewHTTPClient(baseURL string, session Session, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		baseURL: u,
		hc:      &http.Client{Timeout: timeout},
		session: session,
		logger:  logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved API base.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// Endpoint joins the base URL with path segments, escaping each one, and
// attaches the query.
func (c *HTTPClient) Endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := *c.baseURL
	base := strings.TrimRight(u.EscapedPath(), "/")
	u.RawPath = base + "/" + strings.Join(escaped, "/")
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(segments, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

type requestOptions struct {
	// anonymous requests carry no token and do not invalidate the session on 401
	anonymous bool
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, in, out any, ro requestOptions) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !ro.anonymous && c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	started := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn(ctx, "request failed", "request_id", requestID, "method", method, "url", endpoint, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request",
		"request_id", requestID,
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized && !ro.anonymous && c.session != nil {
			if err := c.session.Invalidate(ctx); err != nil {
				c.logger.Error(ctx, "session invalidation failed", "error", err)
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls "message" or "error" out of a JSON error body,
// falling back to the raw text.
func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
