// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 404, Detail: "agent not found", Method: "GET", Path: "/agents/a1"}
	want := "neurocluster: GET /agents/a1: HTTP 404: agent not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &APIError{StatusCode: 502, Method: "POST", Path: "/threads"}
	want = "neurocluster: POST /threads: HTTP 502"
	if got := bare.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAPIErrorIsMatchesStatus(t *testing.T) {
	err := fmt.Errorf("list agents: %w", &APIError{StatusCode: http.StatusNotFound})
	if !errors.Is(err, &APIError{StatusCode: http.StatusNotFound}) {
		t.Error("errors.Is = false, want match on status code")
	}
	if errors.Is(err, &APIError{StatusCode: http.StatusForbidden}) {
		t.Error("errors.Is = true, want mismatch on different status")
	}
}

func TestStatusHelpers(t *testing.T) {
	cases := []struct {
		code int
		fn   func(error) bool
	}{
		{http.StatusNotFound, IsNotFound},
		{http.StatusForbidden, IsPermissionDenied},
		{http.StatusTooManyRequests, IsRateLimited},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("wrapped: %w", &APIError{StatusCode: tc.code})
		if !tc.fn(wrapped) {
			t.Errorf("helper for %d = false, want true", tc.code)
		}
		if tc.fn(errors.New("plain")) {
			t.Errorf("helper for %d matched a non-API error", tc.code)
		}
	}
}

func TestMessageContentText(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain string", `"hello"`, "hello"},
		{"content object", `{"role": "assistant", "content": "hi there"}`, "hi there"},
		{"opaque payload", `{"chunks": [1, 2]}`, `{"chunks": [1, 2]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Message{Content: []byte(tc.content)}
			if got := m.ContentText(); got != tc.want {
				t.Errorf("ContentText() = %q, want %q", got, tc.want)
			}
		})
	}
}
