// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Store manages credentials for named profiles, such as one credential per
// integration account.
type Store interface {
	// Get retrieves credentials for a profile.
	Get(ctx context.Context, profile string) (*Credentials, error)

	// Put stores credentials for a profile.
	Put(ctx context.Context, profile string, creds *Credentials) error

	// Delete removes credentials for a profile.
	Delete(ctx context.Context, profile string) error
}

// MemoryStore is an in-memory Store with an optional TTL after which stored
// credentials are evicted regardless of their own expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	creds   map[string]*Credentials
	stored  map[string]time.Time
	ttl     time.Duration
	nowFunc func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a MemoryStore. A ttl of zero disables TTL eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		creds:   make(map[string]*Credentials),
		stored:  make(map[string]time.Time),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, profile string) (*Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, ok := s.creds[profile]
	if !ok {
		return nil, fmt.Errorf("no credentials for profile %q", profile)
	}
	if creds.IsExpired() {
		return nil, fmt.Errorf("credentials for profile %q are expired", profile)
	}
	if s.ttl > 0 && s.nowFunc().Sub(s.stored[profile]) > s.ttl {
		return nil, fmt.Errorf("credentials for profile %q exceeded store TTL", profile)
	}
	return creds, nil
}

func (s *MemoryStore) Put(ctx context.Context, profile string, creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials cannot be nil")
	}
	if profile == "" {
		return fmt.Errorf("profile cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[profile] = creds
	s.stored[profile] = s.nowFunc()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, profile)
	delete(s.stored, profile)
	return nil
}

// Purge drops every entry that is expired or past the store TTL and returns
// the number removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	removed := 0
	for profile, creds := range s.creds {
		stale := creds.IsExpired()
		if !stale && s.ttl > 0 && now.Sub(s.stored[profile]) > s.ttl {
			stale = true
		}
		if stale {
			delete(s.creds, profile)
			delete(s.stored, profile)
			removed++
		}
	}
	return removed
}
