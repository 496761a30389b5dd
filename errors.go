// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the NeuroCluster API.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Detail is the server-provided error detail, when present.
	Detail string

	// Method and Path identify the failed request.
	Method string
	Path   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("neurocluster: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("neurocluster: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Is matches two APIErrors by status code, so callers can compare against
// a bare &APIError{StatusCode: ...}.
func (e *APIError) Is(target error) bool {
	var apiErr *APIError
	if errors.As(target, &apiErr) {
		return e.StatusCode == apiErr.StatusCode
	}
	return false
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsPermissionDenied reports whether err is an APIError with status 403.
func IsPermissionDenied(err error) bool {
	return isStatus(err, http.StatusForbidden)
}

// IsRateLimited reports whether err is an APIError with status 429.
func IsRateLimited(err error) bool {
	return isStatus(err, http.StatusTooManyRequests)
}

func isStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
