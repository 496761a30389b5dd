// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestAPIKeyApply(t *testing.T) {
	creds := NewAPIKey("nk-test-123")
	h := http.Header{}
	if err := creds.Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := h.Get("X-API-Key"); got != "nk-test-123" {
		t.Errorf("X-API-Key = %q, want %q", got, "nk-test-123")
	}
	if got := h.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}
}

func TestBearerApply(t *testing.T) {
	creds := NewBearer("tok", nil)
	h := http.Header{}
	if err := creds.Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := h.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok")
	}
}

func TestExpiredCredentials(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	creds := NewBearer("tok", &past)
	if creds.IsValid() {
		t.Error("IsValid() = true for expired credentials")
	}
	if err := creds.Apply(http.Header{}); err == nil {
		t.Error("Apply() succeeded with expired credentials")
	}
}

func TestEmptyAPIKeyInvalid(t *testing.T) {
	if NewAPIKey("").IsValid() {
		t.Error("IsValid() = true for empty API key")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	if _, err := store.Get(ctx, "missing"); err == nil {
		t.Error("Get() on empty store succeeded")
	}
	if err := store.Put(ctx, "", NewAPIKey("k")); err == nil {
		t.Error("Put() with empty profile succeeded")
	}

	if err := store.Put(ctx, "default", NewAPIKey("k")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	creds, err := store.Get(ctx, "default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if creds.APIKey != "k" {
		t.Errorf("APIKey = %q, want %q", creds.APIKey, "k")
	}

	if err := store.Delete(ctx, "default"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "default"); err == nil {
		t.Error("Get() after Delete succeeded")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.nowFunc = func() time.Time { return now }

	if err := store.Put(ctx, "p", NewAPIKey("k")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := store.Get(ctx, "p"); err != nil {
		t.Fatalf("Get() before TTL error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "p"); err == nil {
		t.Error("Get() after TTL succeeded")
	}
	if n := store.Purge(); n != 1 {
		t.Errorf("Purge() = %d, want 1", n)
	}
}
