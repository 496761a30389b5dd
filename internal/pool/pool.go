// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed object pooling for hot-path allocations such
// as request-body buffers and transcript builders.
package pool

import (
	"bytes"
	"strings"
	"sync"
)

// Pool is a generics wrapper around [sync.Pool] providing strongly-typed
// object pooling.
type Pool[T any] struct {
	p sync.Pool
}

// Reseter is implemented by pooled values that can be cleared for reuse.
type Reseter interface {
	Reset()
}

// New returns a new [Pool] for T, using fn to construct values when the pool
// is empty.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any {
				return fn()
			},
		},
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put resets x if it is a Reseter and returns it to the pool.
func (p *Pool[T]) Put(x T) {
	if xx, ok := any(x).(Reseter); ok {
		xx.Reset()
	}
	p.p.Put(x)
}

// Bytes pools [*bytes.Buffer] values.
var Bytes = New(func() *bytes.Buffer {
	return &bytes.Buffer{}
})

// String pools [*strings.Builder] values.
var String = New(func() *strings.Builder {
	return &strings.Builder{}
})
