// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package sse implements the server-sent-events framing used by agent-run
// streaming endpoints. It only handles the SSE layer; interpreting the data
// payloads is the stream package's job.
package sse

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
)

// Event is one server-sent event.
type Event struct {
	Type  string
	Data  string
	ID    string
	Retry int
}

// Decoder reads SSE events from a response body.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Decoder{scanner: sc}
}

// Decode returns the next event, or io.EOF when the stream is exhausted.
func (d *Decoder) Decode() (*Event, error) {
	var (
		ev      Event
		hasData bool
	)
	for d.scanner.Scan() {
		line := d.scanner.Text()

		// A blank line dispatches the accumulated event.
		if line == "" {
			if hasData || ev.Type != "" {
				return &ev, nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if !found {
			field, value = line, ""
		}
		// Per the SSE spec, a single leading space in the value is framing,
		// anything beyond it is payload.
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			ev.Type = value
		case "data":
			if hasData {
				ev.Data += "\n"
			}
			ev.Data += value
			hasData = true
		case "id":
			ev.ID = value
		case "retry":
			if n, err := strconv.Atoi(value); err == nil {
				ev.Retry = n
			}
		}
	}
	if err := d.scanner.Err(); err != nil {
		return nil, err
	}
	if hasData || ev.Type != "" {
		return &ev, nil
	}
	return nil, io.EOF
}

// Source adapts a Decoder into a chunk source: each call yields the data
// payload of the next SSE event, skipping events that carry none. It closes
// the underlying body when the stream ends.
type Source struct {
	dec  *Decoder
	body io.Closer
}

// NewSource returns a Source over an open streaming response body.
func NewSource(body io.ReadCloser) *Source {
	return &Source{dec: NewDecoder(body), body: body}
}

// Next returns the next data payload. It reports io.EOF on clean stream end.
func (s *Source) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		ev, err := s.dec.Decode()
		if err != nil {
			return "", err
		}
		if ev.Data == "" {
			continue
		}
		return ev.Data, nil
	}
}

// Close closes the underlying response body.
func (s *Source) Close() error {
	return s.body.Close()
}
