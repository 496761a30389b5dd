// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/neurocluster/neurocluster-go"
	"github.com/neurocluster/neurocluster-go/auth"
)

// Limiter gates request dispatch. *ratelimit.Limiter and *ratelimit.Adaptive
// both satisfy it.
type Limiter interface {
	Acquire(ctx context.Context) (func(), error)
}

// Option configures a Client.
type Option func(*options) error

type options struct {
	baseURL    string
	httpClient *http.Client
	creds      *auth.Credentials
	headers    map[string]string
	userAgent  string
	timeout    time.Duration
	retry      *RetryConfig
	limiter    Limiter
	logger     *slog.Logger

	interceptors []Interceptor
}

func defaultOptions() *options {
	return &options{
		baseURL:    neurocluster.DefaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
		retry:      DefaultRetryConfig(),
		logger:     slog.New(slog.DiscardHandler),
		userAgent:  "neurocluster-go/" + neurocluster.Version,
	}
}

// WithBaseURL sets the API base URL, e.g. "https://api.neurocluster.com/api".
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return &ValidationError{Field: "baseURL", Message: "base URL cannot be empty"}
		}
		o.baseURL = strings.TrimRight(url, "/")
		return nil
	}
}

// WithAPIKey authenticates requests with a platform API key.
func WithAPIKey(key string) Option {
	return func(o *options) error {
		if key == "" {
			return &ValidationError{Field: "apiKey", Message: "API key cannot be empty"}
		}
		o.creds = auth.NewAPIKey(key)
		return nil
	}
}

// WithCredentials authenticates requests with explicit credentials, such as
// a bearer JWT from auth.ParseJWT.
func WithCredentials(creds *auth.Credentials) Option {
	return func(o *options) error {
		if creds == nil {
			return &ValidationError{Field: "credentials", Message: "credentials cannot be nil"}
		}
		o.creds = creds
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		if client == nil {
			return &ValidationError{Field: "httpClient", Message: "HTTP client cannot be nil"}
		}
		o.httpClient = client
		return nil
	}
}

// WithTimeout sets the per-request timeout. It does not apply to streaming
// connections, which stay open for the life of the run.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return &ValidationError{Field: "timeout", Message: "timeout must be positive"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithHeaders adds fixed headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) error {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
		return nil
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		if ua == "" {
			return &ValidationError{Field: "userAgent", Message: "user agent cannot be empty"}
		}
		o.userAgent = ua
		return nil
	}
}

// WithRetryConfig sets the retry policy for transient failures.
func WithRetryConfig(config *RetryConfig) Option {
	return func(o *options) error {
		if config == nil {
			return &ValidationError{Field: "retryConfig", Message: "retry config cannot be nil"}
		}
		if config.MaxAttempts > 0 && config.Multiplier < 1 {
			return &ValidationError{Field: "retryConfig.Multiplier", Message: "multiplier must be at least 1"}
		}
		o.retry = config
		return nil
	}
}

// WithRateLimiter throttles outgoing requests through the given limiter.
func WithRateLimiter(l Limiter) Option {
	return func(o *options) error {
		if l == nil {
			return &ValidationError{Field: "rateLimiter", Message: "rate limiter cannot be nil"}
		}
		o.limiter = l
		return nil
	}
}

// WithInterceptors appends request interceptors, applied in order around the
// underlying HTTP call.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(o *options) error {
		o.interceptors = append(o.interceptors, interceptors...)
		return nil
	}
}

// WithLogger routes client logs through the given slog logger. By default
// logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &ValidationError{Field: "logger", Message: "logger cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}
