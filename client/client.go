// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/neurocluster/neurocluster-go/auth"
	"github.com/neurocluster/neurocluster-go/internal/pool"
)

// Client is the NeuroCluster API client. Create one with New and share it
// across goroutines; all methods are safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      *auth.Credentials
	headers    map[string]string
	userAgent  string
	timeout    time.Duration
	retry      *RetryConfig
	limiter    Limiter
	logger     *slog.Logger
	invoke     Invoker

	// Agents, Threads, and Versions cover the core agent lifecycle.
	Agents   *AgentsService
	Threads  *ThreadsService
	Versions *VersionsService

	// Integration services are built lazily; most applications never touch
	// them.
	pipedreamOnce sync.Once
	pipedream     *PipedreamService
	composioOnce  sync.Once
	composio      *ComposioService
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	c := &Client{
		baseURL:    o.baseURL,
		httpClient: o.httpClient,
		creds:      o.creds,
		headers:    o.headers,
		userAgent:  o.userAgent,
		timeout:    o.timeout,
		retry:      o.retry,
		limiter:    o.limiter,
		logger:     o.logger,
	}

	interceptors := append([]Interceptor{
		RequestIDInterceptor(),
		LoggingInterceptor(c.logger),
	}, o.interceptors...)
	c.invoke = chainInterceptors(interceptors, func(ctx context.Context, req *http.Request) (*http.Response, error) {
		return c.httpClient.Do(req)
	})

	c.Agents = &AgentsService{client: c}
	c.Threads = &ThreadsService{client: c}
	c.Versions = &VersionsService{client: c}
	return c, nil
}

// Pipedream returns the Pipedream integration service.
func (c *Client) Pipedream() *PipedreamService {
	c.pipedreamOnce.Do(func() {
		c.pipedream = &PipedreamService{client: c}
	})
	return c.pipedream
}

// Composio returns the Composio integration service.
func (c *Client) Composio() *ComposioService {
	c.composioOnce.Do(func() {
		c.composio = &ComposioService{client: c}
	})
	return c.composio
}

// limiterFeedback is implemented by adaptive limiters that want to hear
// about 429s and successes.
type limiterFeedback interface {
	OnRateLimited()
	OnSuccess()
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, nil, out)
}

// post issues a POST request with a JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, nil, out)
}

// put issues a PUT request with a JSON body and decodes the response.
func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, in, nil, out)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}

// postForm issues a POST request with an urlencoded form body.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	body := []byte(form.Encode())
	return c.doRaw(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", nil, out)
}

// do encodes in as JSON (when non-nil) and performs the request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any, extraHeaders map[string]string, out any) error {
	var body []byte
	contentType := ""
	if in != nil {
		buf := pool.Bytes.Get()
		defer pool.Bytes.Put(buf)
		if err := json.MarshalWrite(buf, in); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = buf.Bytes()
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, query, body, contentType, extraHeaders, out)
}

// doRaw performs one logical request with rate limiting, retries, and error
// mapping, then decodes a 2xx JSON response into out (when out is non-nil).
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body []byte, contentType string, extraHeaders map[string]string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	attempts := max(1, c.retry.MaxAttempts)
	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			if err := sleep(ctx, c.retry.backoffDelay(attempt-1)); err != nil {
				return err
			}
		}

		respBody, statusCode, err := c.send(ctx, method, u, body, contentType, extraHeaders)
		if err != nil {
			// Transport-level failure; retry unless the context is done.
			lastErr = err
			continue
		}

		if statusCode >= 200 && statusCode < 300 {
			if fb, ok := c.limiter.(limiterFeedback); ok {
				fb.OnSuccess()
			}
			if out == nil || len(respBody) == 0 {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("decode %s %s response: %w", method, path, err)
			}
			return nil
		}

		apiErr := apiError(method, path, statusCode, respBody)
		if statusCode == http.StatusTooManyRequests {
			if fb, ok := c.limiter.(limiterFeedback); ok {
				fb.OnRateLimited()
			}
		}
		if !retryableStatus(statusCode) {
			return apiErr
		}
		lastErr = apiErr
	}
	return fmt.Errorf("%s %s failed after %d attempts: %w", method, path, attempts, lastErr)
}

// send performs a single HTTP round trip and drains the response body.
func (c *Client) send(ctx context.Context, method, url string, body []byte, contentType string, extraHeaders map[string]string) ([]byte, int, error) {
	if c.limiter != nil {
		release, err := c.limiter.Acquire(ctx)
		if err != nil {
			return nil, 0, err
		}
		defer release()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}
	if c.creds != nil {
		if err := c.creds.Apply(req.Header); err != nil {
			return nil, 0, err
		}
	}

	resp, err := c.invoke(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response body: %w", err)
	}
	return respBody, resp.StatusCode, nil
}
