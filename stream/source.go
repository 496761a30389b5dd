// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"io"
)

// ChunkSource yields successive raw text chunks of a streaming response.
// It returns io.EOF when the underlying transport closes cleanly, and any
// other error for a transport failure. Implementations need not be safe for
// concurrent use; a Session calls Next from a single goroutine.
type ChunkSource interface {
	Next(ctx context.Context) (string, error)
}

// Chunks returns a ChunkSource that replays the given chunks in order and
// then reports io.EOF. It is mainly useful in tests and examples.
func Chunks(chunks ...string) ChunkSource {
	return &sliceSource{chunks: chunks}
}

type sliceSource struct {
	chunks []string
	pos    int
}

func (s *sliceSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.pos >= len(s.chunks) {
		return "", io.EOF
	}
	c := s.chunks[s.pos]
	s.pos++
	return c, nil
}

// NewReaderSource adapts an io.Reader into a ChunkSource. Each Next performs
// a single Read into an internal buffer of the given size; size <= 0 selects
// a 4 KiB buffer.
func NewReaderSource(r io.Reader, size int) ChunkSource {
	if size <= 0 {
		size = 4096
	}
	return &readerSource{r: r, buf: make([]byte, size)}
}

type readerSource struct {
	r   io.Reader
	buf []byte
}

func (s *readerSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for {
		n, err := s.r.Read(s.buf)
		if n > 0 {
			return string(s.buf[:n]), nil
		}
		if err != nil {
			return "", err
		}
		// Zero-byte read with no error; try again, respecting cancellation.
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
}
