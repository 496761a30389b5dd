// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/neurocluster/neurocluster-go"
)

// ValidationError reports an invalid client configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// maxErrorBodyLen caps how much of an unstructured error body is carried
// into the error message.
const maxErrorBodyLen = 200

// apiError maps a non-2xx response body to a *neurocluster.APIError. The
// platform reports errors as {"detail": ...}; a few endpoints use
// {"message": ...}; anything else is passed through truncated.
func apiError(method, path string, statusCode int, body []byte) *neurocluster.APIError {
	detail := gjson.GetBytes(body, "detail").String()
	if detail == "" {
		detail = gjson.GetBytes(body, "message").String()
	}
	if detail == "" {
		detail = strings.TrimSpace(string(body))
		if len(detail) > maxErrorBodyLen {
			detail = detail[:maxErrorBodyLen]
		}
	}
	return &neurocluster.APIError{
		StatusCode: statusCode,
		Detail:     detail,
		Method:     method,
		Path:       path,
	}
}
