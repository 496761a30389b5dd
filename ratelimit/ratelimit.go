// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package ratelimit provides client-side throttling for API traffic: a
// token-bucket rate cap combined with a concurrency ceiling, and an adaptive
// variant that backs off when the server starts returning 429s.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter gates outgoing requests. The zero value is invalid; use New.
type Limiter struct {
	bucket *rate.Limiter
	sem    chan struct{}
}

// New returns a Limiter allowing rps requests per second with the given
// burst, and at most maxConcurrent requests in flight. rps <= 0 disables the
// rate cap; maxConcurrent <= 0 disables the concurrency ceiling.
func New(rps float64, burst, maxConcurrent int) *Limiter {
	l := &Limiter{}
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		l.bucket = rate.NewLimiter(rate.Limit(rps), burst)
	}
	if maxConcurrent > 0 {
		l.sem = make(chan struct{}, maxConcurrent)
	}
	return l
}

// Acquire blocks until the request may proceed and returns a release
// function that must be called when the request completes.
func (l *Limiter) Acquire(ctx context.Context) (func(), error) {
	if l.bucket != nil {
		if err := l.bucket.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if l.sem == nil {
		return func() {}, nil
	}
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Adaptive wraps a Limiter and adjusts its rate based on server feedback:
// each 429 halves the rate, and sustained successes restore it toward the
// configured maximum.
type Adaptive struct {
	*Limiter

	mu        sync.Mutex
	maxRate   rate.Limit
	minRate   rate.Limit
	successes int

	// recoverAfter is how many consecutive successes trigger one recovery
	// step (a 25% rate increase, capped at maxRate).
	recoverAfter int
}

// NewAdaptive returns an Adaptive limiter starting at rps.
func NewAdaptive(rps float64, burst, maxConcurrent int) *Adaptive {
	if rps <= 0 {
		rps = 10
	}
	return &Adaptive{
		Limiter:      New(rps, burst, maxConcurrent),
		maxRate:      rate.Limit(rps),
		minRate:      rate.Limit(rps / 16),
		recoverAfter: 10,
	}
}

// OnRateLimited records a 429 response and halves the current rate, bounded
// below by a fraction of the configured rate.
func (a *Adaptive) OnRateLimited() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.successes = 0
	next := a.bucket.Limit() / 2
	if next < a.minRate {
		next = a.minRate
	}
	a.bucket.SetLimit(next)
}

// OnSuccess records a successful response; enough of them in a row ratchet
// the rate back up toward the maximum.
func (a *Adaptive) OnSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bucket.Limit() >= a.maxRate {
		return
	}
	a.successes++
	if a.successes < a.recoverAfter {
		return
	}
	a.successes = 0
	next := a.bucket.Limit() * 5 / 4
	if next > a.maxRate {
		next = a.maxRate
	}
	a.bucket.SetLimit(next)
}

// Rate returns the current requests-per-second limit.
func (a *Adaptive) Rate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.bucket.Limit())
}
