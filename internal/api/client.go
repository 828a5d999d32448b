// Package api is the HTTP client for the snappy message service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/logger"
)

const (
	// DefaultTimeout bounds a single request when the caller's context has no deadline.
	DefaultTimeout = 15 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20

	// RequestIDHeader carries a per-request ID for correlating client and server logs.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the message service. Cookies set by the service are kept
// and sent back on later requests, so a session cookie from login works.
type Client struct {
	host       string
	httpClient *http.Client
	token      string // optional bearer token
}

// NewClient creates a client for host (e.g. "http://localhost:5000").
func NewClient(host string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	jar, _ := cookiejar.New(nil) // only fails with non-nil options
	return NewClientWithHTTP(host, &http.Client{
		Timeout: timeout,
		Jar:     jar,
	})
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(host string, httpClient *http.Client) *Client {
	return &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: httpClient,
	}
}

// SetToken sets a bearer token sent with every request. Empty disables it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Host returns the base URL requests are sent to.
func (c *Client) Host() string {
	return c.host
}

// do sends a request and returns the response body. Transport failures,
// timeouts, and non-2xx statuses come back as structured errors.
func (c *Client) do(ctx context.Context, op perrors.Op, method, url string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, perrors.E(op, perrors.KindInvalid, "failed to encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, perrors.E(op, perrors.KindInvalid, fmt.Sprintf("failed to create request for %s", url), err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := logger.WithComponent("api").With("op", string(op), "requestID", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "url", url, "error", err, "elapsed", time.Since(start))
		if isTimeout(err) {
			return nil, perrors.RequestTimeout(op, url, err)
		}
		return nil, perrors.FetchFailed(op, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn("failed to read response", "method", method, "url", url, "status", resp.StatusCode, "error", err)
		return nil, perrors.FetchFailed(op, url, err)
	}

	log.Debug("request done", "method", method, "url", url, "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, perrors.UnexpectedStatus(op, url, resp.StatusCode)
	}
	return data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isJSONArray reports whether data holds a JSON array (ignoring whitespace).
func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
