// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream decodes the chunked text protocol of agent-run streaming
// responses into typed events.
//
// The transport delivers opaque text fragments with no boundary guarantees:
// a marker or a JSON value may span several chunks, and one chunk may carry
// several events. A Session owns the buffering and state needed to turn that
// fragment sequence into a well-ordered event sequence, ending in exactly one
// terminal event (Done or a non-recoverable ErrorEvent).
package stream

// Event is a single decoded stream event. It is a closed set: TextDelta,
// ToolCallStart, ToolCallArgumentsDelta, ToolCallEnd, StatusUpdate,
// ErrorEvent, and Done.
type Event interface {
	event()
}

// TextDelta is a fragment of assistant-visible text.
type TextDelta struct {
	Content string
}

// ToolCallStart signals that a tool invocation has begun.
type ToolCallStart struct {
	ID   string
	Name string
}

// ToolCallArgumentsDelta carries part of the JSON arguments of an in-flight
// tool call. Concatenating all fragments for an ID yields the complete
// argument text.
type ToolCallArgumentsDelta struct {
	ID       string
	Fragment string
}

// ToolCallEnd signals that the arguments of a tool call are complete and
// parsed as valid JSON.
type ToolCallEnd struct {
	ID string
}

// StatusUpdate is a non-content control signal from the server, such as
// "thinking" or "running-tool". Unknown statuses pass through unvalidated.
type StatusUpdate struct {
	Status string
	Detail string
}

// ErrorEvent reports malformed or unexpected input. A non-recoverable
// ErrorEvent is terminal: the session is dead and no Done follows.
type ErrorEvent struct {
	Message     string
	Recoverable bool
}

// Done is the terminal marker of a successful stream. No events follow it.
type Done struct{}

func (TextDelta) event()              {}
func (ToolCallStart) event()          {}
func (ToolCallArgumentsDelta) event() {}
func (ToolCallEnd) event()            {}
func (StatusUpdate) event()           {}
func (ErrorEvent) event()             {}
func (Done) event()                   {}
