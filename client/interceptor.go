// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Interceptor is a middleware that can observe and modify outgoing requests
// and their responses.
type Interceptor func(ctx context.Context, req *http.Request, invoker Invoker) (*http.Response, error)

// Invoker is the next handler in an interceptor chain.
type Invoker func(ctx context.Context, req *http.Request) (*http.Response, error)

// chainInterceptors composes interceptors right to left around invoker, so
// the first interceptor in the slice is outermost.
func chainInterceptors(interceptors []Interceptor, invoker Invoker) Invoker {
	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor := interceptors[i]
		next := invoker
		invoker = func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return interceptor(ctx, req, next)
		}
	}
	return invoker
}

// LoggingInterceptor logs each request and its outcome at debug level.
func LoggingInterceptor(logger *slog.Logger) Interceptor {
	return func(ctx context.Context, req *http.Request, invoker Invoker) (*http.Response, error) {
		start := time.Now()
		logger.DebugContext(ctx, "request", "method", req.Method, "url", req.URL.String())

		resp, err := invoker(ctx, req)
		if err != nil {
			logger.WarnContext(ctx, "request failed",
				"method", req.Method, "url", req.URL.String(),
				"elapsed", time.Since(start), "error", err)
			return nil, err
		}
		logger.DebugContext(ctx, "response",
			"method", req.Method, "url", req.URL.String(),
			"status", resp.StatusCode, "elapsed", time.Since(start))
		return resp, nil
	}
}

// RequestIDInterceptor tags each request with a unique X-Request-ID so
// failures can be correlated with server logs.
func RequestIDInterceptor() Interceptor {
	return func(ctx context.Context, req *http.Request, invoker Invoker) (*http.Response, error) {
		if req.Header.Get("X-Request-ID") == "" {
			req.Header.Set("X-Request-ID", uuid.NewString())
		}
		return invoker(ctx, req)
	}
}

// HeaderInterceptor sets fixed headers on every request.
func HeaderInterceptor(headers map[string]string) Interceptor {
	return func(ctx context.Context, req *http.Request, invoker Invoker) (*http.Response, error) {
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return invoker(ctx, req)
	}
}
