// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"

	"github.com/neurocluster/neurocluster-go"
)

func decodeJSONBody(r *http.Request, out any) error {
	return json.UnmarshalRead(r.Body, out)
}

// fastRetry keeps retry tests quick.
var fastRetry = &RetryConfig{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2.0,
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithAPIKey("test-key"),
		WithRetryConfig(fastRetry),
	}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewOptionValidation(t *testing.T) {
	cases := []struct {
		name  string
		opt   Option
		field string
	}{
		{"empty base URL", WithBaseURL(""), "baseURL"},
		{"empty API key", WithAPIKey(""), "apiKey"},
		{"nil HTTP client", WithHTTPClient(nil), "httpClient"},
		{"negative timeout", WithTimeout(-time.Second), "timeout"},
		{"bad multiplier", WithRetryConfig(&RetryConfig{MaxAttempts: 3, Multiplier: 0.5}), "retryConfig.Multiplier"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opt)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("New() error = %v, want *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"agents": [], "pagination": {}}`))
	}), WithHeaders(map[string]string{"X-Team": "platform"}))

	if _, err := c.Agents.List(context.Background(), nil); err != nil {
		t.Fatalf("List: %v", err)
	}

	if got.Get("X-API-Key") != "test-key" {
		t.Errorf("X-API-Key = %q, want %q", got.Get("X-API-Key"), "test-key")
	}
	if ua := got.Get("User-Agent"); !strings.HasPrefix(ua, "neurocluster-go/") {
		t.Errorf("User-Agent = %q, want neurocluster-go/ prefix", ua)
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}
	if got.Get("X-Team") != "platform" {
		t.Errorf("X-Team = %q, want %q", got.Get("X-Team"), "platform")
	}
}

func TestAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail field", http.StatusNotFound, `{"detail": "agent not found"}`, "agent not found"},
		{"message fallback", http.StatusForbidden, `{"message": "no access"}`, "no access"},
		{"raw body", http.StatusConflict, "version conflict", "version conflict"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := c.Agents.Get(context.Background(), "a1")
			var apiErr *neurocluster.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Get() error = %v, want *neurocluster.APIError", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tc.status)
			}
			if apiErr.Detail != tc.wantDetail {
				t.Errorf("Detail = %q, want %q", apiErr.Detail, tc.wantDetail)
			}
		})
	}
}

func TestNotFoundAndRateLimitedHelpers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "gone"}`))
	}))

	_, err := c.Agents.Get(context.Background(), "missing")
	if !neurocluster.IsNotFound(err) {
		t.Errorf("IsNotFound = false, want true for %v", err)
	}
	if neurocluster.IsRateLimited(err) {
		t.Errorf("IsRateLimited = true, want false for %v", err)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"agent_id": "a1", "name": "helper"}`))
	}))

	agent, err := c.Agents.Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if agent.Name != "helper" {
		t.Errorf("Name = %q, want %q", agent.Name, "helper")
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server calls = %d, want 2", n)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "bad request"}`))
	}))

	_, err := c.Agents.Get(context.Background(), "a1")
	if err == nil {
		t.Fatal("Get() error = nil, want APIError")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server calls = %d, want 1", n)
	}
}

func TestRetryExhaustion(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.Agents.Get(context.Background(), "a1")
	if err == nil {
		t.Fatal("Get() error = nil, want exhaustion error")
	}
	if !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Errorf("error = %q, want attempt count", err)
	}
	var apiErr *neurocluster.APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("error does not wrap *neurocluster.APIError: %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server calls = %d, want 3", n)
	}
}

// recordingLimiter counts limiter callbacks.
type recordingLimiter struct {
	acquired    atomic.Int32
	rateLimited atomic.Int32
	successes   atomic.Int32
}

func (l *recordingLimiter) Acquire(ctx context.Context) (func(), error) {
	l.acquired.Add(1)
	return func() {}, nil
}

func (l *recordingLimiter) OnRateLimited() { l.rateLimited.Add(1) }
func (l *recordingLimiter) OnSuccess()    { l.successes.Add(1) }

func TestLimiterFeedback(t *testing.T) {
	var calls atomic.Int32
	lim := &recordingLimiter{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"agent_id": "a1"}`))
	}), WithRateLimiter(lim))

	if _, err := c.Agents.Get(context.Background(), "a1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n := lim.acquired.Load(); n != 2 {
		t.Errorf("Acquire calls = %d, want 2", n)
	}
	if n := lim.rateLimited.Load(); n != 1 {
		t.Errorf("OnRateLimited calls = %d, want 1", n)
	}
	if n := lim.successes.Load(); n != 1 {
		t.Errorf("OnSuccess calls = %d, want 1", n)
	}
}

func TestAgentsListQuery(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"agents": [{"agent_id": "a1"}], "pagination": {"page": 2}}`))
	}))

	list, err := c.Agents.List(context.Background(), &AgentListParams{
		Page:   2,
		Limit:  10,
		Search: "helper",
		SortBy: "name",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := map[string][]string{
		"page":    {"2"},
		"limit":   {"10"},
		"search":  {"helper"},
		"sort_by": {"name"},
	}
	if diff := cmp.Diff(want, gotQuery); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	if len(list.Agents) != 1 || list.Agents[0].AgentID != "a1" {
		t.Errorf("Agents = %+v, want one agent a1", list.Agents)
	}
}

func TestThreadsCreateSendsForm(t *testing.T) {
	var gotContentType, gotName string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/threads" {
			t.Errorf("request = %s %s, want POST /threads", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotName = r.PostFormValue("name")
		w.Write([]byte(`{"thread_id": "t1", "project_id": "p1"}`))
	}))

	resp, err := c.Threads.Create(context.Background(), "support")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want form encoding", gotContentType)
	}
	if gotName != "support" {
		t.Errorf("name = %q, want %q", gotName, "support")
	}
	if resp.ThreadID != "t1" || resp.ProjectID != "p1" {
		t.Errorf("response = %+v, want thread t1 in project p1", resp)
	}
}

func TestAddMessageSendsForm(t *testing.T) {
	var gotMessage string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/threads/t1/messages/add" {
			t.Errorf("path = %s, want /threads/t1/messages/add", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotMessage = r.PostFormValue("message")
		w.Write([]byte(`{"message_id": "m1", "thread_id": "t1"}`))
	}))

	msg, err := c.Threads.AddMessage(context.Background(), "t1", "hello there")
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if gotMessage != "hello there" {
		t.Errorf("message = %q, want %q", gotMessage, "hello there")
	}
	if msg.MessageID != "m1" {
		t.Errorf("MessageID = %q, want %q", msg.MessageID, "m1")
	}
}

func TestStartAgentDefaults(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/thread/t1/agent/start" {
			t.Errorf("path = %s, want /thread/t1/agent/start", r.URL.Path)
		}
		dec := map[string]any{}
		if err := decodeJSONBody(r, &dec); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotBody = dec
		w.Write([]byte(`{"agent_run_id": "r1", "status": "running"}`))
	}))

	resp, err := c.Threads.StartAgent(context.Background(), "t1", nil)
	if err != nil {
		t.Fatalf("StartAgent: %v", err)
	}
	if resp.AgentRunID != "r1" {
		t.Errorf("AgentRunID = %q, want %q", resp.AgentRunID, "r1")
	}
	if gotBody["stream"] != true {
		t.Errorf("stream = %v, want true", gotBody["stream"])
	}
	if gotBody["reasoning_effort"] != "low" {
		t.Errorf("reasoning_effort = %v, want %q", gotBody["reasoning_effort"], "low")
	}
}

func TestInterceptorOrdering(t *testing.T) {
	var order []string
	tag := func(name string) Interceptor {
		return func(ctx context.Context, req *http.Request, next Invoker) (*http.Response, error) {
			order = append(order, name)
			return next(ctx, req)
		}
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), WithInterceptors(tag("outer"), tag("inner")))

	if _, err := c.Agents.Get(context.Background(), "a1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff([]string{"outer", "inner"}, order); diff != "" {
		t.Errorf("interceptor order mismatch (-want +got):\n%s", diff)
	}
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Agents.Get(ctx, "a1")
		errCh <- err
	}()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("request did not observe cancellation")
	}
}
