package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/piresc/payrelay/internal/pkg/circuitbreaker"
	"github.com/piresc/payrelay/internal/pkg/logger"
	nrpkg "github.com/piresc/payrelay/internal/pkg/newrelic"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 30 * time.Second

// Config configures a Client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Headers are sent on every request
	Headers map[string]string
	// Breaker guards every call when set
	Breaker *circuitbreaker.CircuitBreaker
}

// Client is a JSON HTTP client for a single upstream API
type Client struct {
	baseURL    string
	httpClient *nethttp.Client
	headers    map[string]string
	breaker    *circuitbreaker.CircuitBreaker
}

// Response is a fully read upstream response
type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports a 2xx status
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ServerError is returned to the circuit breaker for 5xx responses
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}

// NewClient creates a new HTTP client
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: &nethttp.Client{Timeout: timeout},
		headers:    config.Headers,
		breaker:    config.Breaker,
	}
}

// PostJSON sends body as JSON to endpoint and returns the raw response.
// Non-2xx statuses are not errors; callers inspect Response.StatusCode.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}) (*Response, error) {
	return c.doRequest(ctx, nethttp.MethodPost, endpoint, body)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*Response, error) {
	url := c.baseURL + endpoint

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var result *Response
	call := func(ctx context.Context) error {
		req, err := nethttp.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
			return c.httpClient.Do(req)
		})
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		result = &Response{StatusCode: resp.StatusCode, Body: data}
		if resp.StatusCode >= 500 {
			return &ServerError{StatusCode: resp.StatusCode}
		}
		return nil
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, call)
	} else {
		err = call(ctx)
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		err = nil
	}
	if err != nil {
		logger.WarnCtx(ctx, "HTTP request failed",
			logger.String("method", method),
			logger.String("url", url),
			logger.Err(err))
		return nil, err
	}

	logger.DebugCtx(ctx, "HTTP request completed",
		logger.String("method", method),
		logger.String("url", url),
		logger.Int("status_code", result.StatusCode))

	return result, nil
}
