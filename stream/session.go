// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/tidwall/gjson"
)

// state tracks where the decoder is inside the wire protocol.
type state int

const (
	stateIdle state = iota
	stateText
	stateToolHeader
	stateToolArguments
	stateToolBody
	stateDone
	stateErrored
)

// Wire sentinels. Marker bodies are the text between '<' and '>'.
const (
	markerDone         = "done"
	markerToolPrefix   = "tool:"
	markerToolEnd      = "tool_end:"
	markerStatusPrefix = "status:"

	// maxMarkerLen bounds the body of a candidate marker. Anything longer
	// is ruled out and replayed as plain text.
	maxMarkerLen = 160
)

// Session decodes one streaming response into an ordered event sequence.
// It is pull-based: Next advances the underlying ChunkSource exactly as far
// as needed to produce the next event. A Session is single-consumer and not
// safe for concurrent use; independent streams get independent sessions.
//
// The sequence ends with exactly one terminal event, either Done or a
// non-recoverable ErrorEvent. After the terminal event, Next returns io.EOF.
type Session struct {
	src ChunkSource

	state state
	buf   []byte  // pending unconsumed input
	queue []Event // decoded but not yet delivered

	// in-flight tool call
	toolID   string
	toolName string
	args     []byte
	argDepth int
	inString bool
	escaped  bool

	closed   bool
	abortErr error // non-EOF transport failure, sticky
}

// NewSession creates a decode session over src. The session takes ownership
// of src for its lifetime but does not close it; transport shutdown belongs
// to whoever opened the stream.
func NewSession(src ChunkSource) *Session {
	return &Session{src: src}
}

// Next returns the next decoded event. It blocks on the ChunkSource only
// when the pending buffer cannot yield an event. After the terminal event
// has been delivered, or after Close, Next returns io.EOF. A transport
// failure from the source aborts the session and is returned verbatim.
func (s *Session) Next(ctx context.Context) (Event, error) {
	for {
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue = s.queue[1:]
			return ev, nil
		}
		if s.abortErr != nil {
			return nil, s.abortErr
		}
		if s.closed || s.state == stateDone || s.state == stateErrored {
			return nil, io.EOF
		}
		chunk, err := s.src.Next(ctx)
		if err == io.EOF {
			s.finish()
			continue
		}
		if err != nil {
			s.abortErr = err
			s.release()
			return nil, err
		}
		s.buf = append(s.buf, chunk...)
		s.advance()
	}
}

// All returns a single-use iterator over the remaining events. Iteration
// stops after the terminal event; a transport failure is yielded once with a
// nil event.
func (s *Session) All(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := s.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Close abandons the session. Pending buffers are released and no further
// input is consumed. Close is idempotent and safe to call at any point.
func (s *Session) Close() error {
	s.closed = true
	s.queue = nil
	s.release()
	return nil
}

func (s *Session) release() {
	s.buf = nil
	s.args = nil
}

// advance drains the pending buffer as far as the current state allows,
// appending decoded events to the queue. It leaves any unresolvable suffix
// (partial marker, open JSON value) in the buffer for the next chunk.
func (s *Session) advance() {
	for {
		switch s.state {
		case stateIdle, stateText, stateToolHeader:
			if !s.scanText() {
				return
			}
		case stateToolArguments:
			if !s.scanArguments() {
				return
			}
		case stateToolBody:
			if !s.scanTerminator() {
				return
			}
		default:
			// Terminal. Anything after the sentinel is ignored.
			s.release()
			return
		}
	}
}

// scanText emits text up to the next control marker and dispatches complete
// markers. It returns false when the buffer is exhausted or ends in a still
// unresolved marker candidate.
func (s *Session) scanText() bool {
	for len(s.buf) > 0 {
		i := bytes.IndexByte(s.buf, '<')
		if i < 0 {
			s.emitText(string(s.buf))
			s.buf = nil
			return false
		}
		if i > 0 {
			s.emitText(string(s.buf[:i]))
			s.buf = s.buf[i:]
		}
		end, verdict := scanMarker(s.buf)
		switch verdict {
		case markerIncomplete:
			// Hold the suffix until it is confirmed or ruled out.
			if couldBeToolHeader(s.buf) {
				s.state = stateToolHeader
			} else if s.state == stateToolHeader {
				s.state = stateText
			}
			return false
		case markerRuledOut:
			s.state = stateText
			s.emitText(string(s.buf[:end]))
			s.buf = s.buf[end:]
		case markerComplete:
			body := string(s.buf[1 : end-1])
			s.buf = s.buf[end:]
			s.state = stateText
			s.dispatchMarker(body)
			if s.state != stateText {
				// Hand the rest of the buffer to the new state's scanner.
				return true
			}
		}
	}
	return false
}

type markerVerdict int

const (
	markerIncomplete markerVerdict = iota
	markerComplete
	markerRuledOut
)

// scanMarker examines a buffer starting at '<'. On markerComplete, end is
// the index just past '>'. On markerRuledOut, end is the number of leading
// bytes that are definitely plain text.
func scanMarker(b []byte) (end int, v markerVerdict) {
	for i := 1; i < len(b); i++ {
		c := b[i]
		if c == '>' {
			if i == 1 {
				return 2, markerRuledOut // literal "<>"
			}
			return i + 1, markerComplete
		}
		if !isMarkerByte(c) {
			if c == '<' {
				// A new candidate starts here; everything before it is text.
				return i, markerRuledOut
			}
			return i + 1, markerRuledOut
		}
		if i > maxMarkerLen {
			return i, markerRuledOut
		}
	}
	return 0, markerIncomplete
}

func isMarkerByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == ':' || c == '-':
		return true
	}
	return false
}

// couldBeToolHeader reports whether a pending "<..." suffix is still a
// viable prefix of a tool-call start marker.
func couldBeToolHeader(b []byte) bool {
	body := string(b[1:])
	if len(body) < len(markerToolPrefix) {
		return strings.HasPrefix(markerToolPrefix, body)
	}
	return strings.HasPrefix(body, markerToolPrefix)
}

// dispatchMarker handles one complete marker body, emitting events and
// updating state.
func (s *Session) dispatchMarker(body string) {
	switch {
	case body == markerDone:
		s.emit(Done{})
		s.state = stateDone
	case strings.HasPrefix(body, markerToolPrefix):
		id, name, ok := strings.Cut(body[len(markerToolPrefix):], ":")
		if !ok || id == "" || name == "" {
			s.fail("malformed tool call header <%s>", body)
			return
		}
		s.toolID, s.toolName = id, name
		s.args = s.args[:0]
		s.argDepth, s.inString, s.escaped = 0, false, false
		s.emit(ToolCallStart{ID: id, Name: name})
		s.state = stateToolArguments
	case strings.HasPrefix(body, markerToolEnd):
		// Terminators are only legal immediately after a completed
		// argument payload, handled in scanTerminator.
		s.fail("unexpected tool call terminator <%s>", body)
	case strings.HasPrefix(body, markerStatusPrefix):
		status, detail, _ := strings.Cut(body[len(markerStatusPrefix):], ":")
		if status == "" {
			s.fail("malformed status marker <%s>", body)
			return
		}
		s.emit(StatusUpdate{Status: status, Detail: detail})
	default:
		// Unrecognized marker: pass through verbatim.
		s.emitText("<" + body + ">")
	}
}

// scanArguments consumes raw JSON argument text, tracking nesting depth and
// string escaping so the value's end is detected without buffering it whole
// on the producer side. Fragments are batched per chunk.
func (s *Session) scanArguments() bool {
	b := s.buf
	i := 0
	// Leading whitespace before the opening brace belongs to the fragment.
	if s.argDepth == 0 {
		for i < len(b) && isJSONSpace(b[i]) {
			i++
		}
		if i == len(b) {
			s.appendArgs(b)
			s.buf = nil
			return false
		}
		if b[i] != '{' && b[i] != '[' {
			s.fail("tool call %s: arguments must be a JSON object or array, got %q", s.toolID, b[i])
			return false
		}
	}
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case s.escaped:
			s.escaped = false
		case s.inString:
			if c == '\\' {
				s.escaped = true
			} else if c == '"' {
				s.inString = false
			}
		case c == '"':
			s.inString = true
		case c == '{' || c == '[':
			s.argDepth++
		case c == '}' || c == ']':
			s.argDepth--
			if s.argDepth == 0 {
				s.appendArgs(b[:i+1])
				s.buf = s.buf[i+1:]
				if !gjson.ValidBytes(s.args) {
					s.fail("tool call %s: invalid JSON arguments", s.toolID)
					return false
				}
				s.emit(ToolCallEnd{ID: s.toolID})
				s.state = stateToolBody
				return true
			}
		}
	}
	s.appendArgs(b)
	s.buf = nil
	return false
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// appendArgs accumulates argument bytes for final validation and emits the
// corresponding delta.
func (s *Session) appendArgs(b []byte) {
	if len(b) == 0 {
		return
	}
	s.args = append(s.args, b...)
	s.emit(ToolCallArgumentsDelta{ID: s.toolID, Fragment: string(b)})
}

// scanTerminator expects the <tool_end:ID> marker that closes the current
// call. ToolCallEnd has already been emitted; the terminator itself produces
// no event.
func (s *Session) scanTerminator() bool {
	for len(s.buf) > 0 && isJSONSpace(s.buf[0]) {
		s.buf = s.buf[1:]
	}
	want := "<" + markerToolEnd + s.toolID + ">"
	if len(s.buf) < len(want) {
		if strings.HasPrefix(want, string(s.buf)) {
			return false // wait for the rest
		}
		s.fail("tool call %s: missing terminator", s.toolID)
		return false
	}
	if string(s.buf[:len(want)]) != want {
		s.fail("tool call %s: missing terminator", s.toolID)
		return false
	}
	s.buf = s.buf[len(want):]
	s.toolID, s.toolName = "", ""
	s.args = s.args[:0]
	s.state = stateText
	return true
}

// finish handles a clean transport close: flush what remains, then emit the
// appropriate terminal event for the state we were left in.
func (s *Session) finish() {
	switch s.state {
	case stateIdle, stateText, stateToolHeader:
		if len(s.buf) > 0 && s.buf[0] == '<' && pendingMarkerViable(s.buf) {
			s.fail("stream ended inside a truncated marker %q", string(s.buf))
			return
		}
		if len(s.buf) > 0 {
			s.emitText(string(s.buf))
			s.buf = nil
		}
		s.emit(Done{})
		s.state = stateDone
	case stateToolArguments:
		s.fail("stream ended inside arguments of tool call %s", s.toolID)
	case stateToolBody:
		s.fail("tool call %s: stream ended before terminator", s.toolID)
	}
	s.release()
}

// pendingMarkerViable reports whether an unresolved "<..." suffix at end of
// stream was still on track to become a recognized marker. If so the stream
// was cut mid-marker; otherwise the suffix is just text.
func pendingMarkerViable(b []byte) bool {
	body := string(b[1:])
	for _, known := range []string{markerDone, markerToolPrefix, markerToolEnd, markerStatusPrefix} {
		if strings.HasPrefix(known, body) || strings.HasPrefix(body, known) {
			return true
		}
	}
	return false
}

func (s *Session) emit(ev Event) {
	s.queue = append(s.queue, ev)
}

func (s *Session) emitText(text string) {
	if text == "" {
		return
	}
	if s.state == stateIdle {
		s.state = stateText
	}
	// Coalesce with a trailing TextDelta so one chunk yields one delta even
	// when the scan resumes several times.
	if n := len(s.queue); n > 0 {
		if td, ok := s.queue[n-1].(TextDelta); ok {
			s.queue[n-1] = TextDelta{Content: td.Content + text}
			return
		}
	}
	s.emit(TextDelta{Content: text})
}

func (s *Session) fail(format string, args ...any) {
	s.emit(ErrorEvent{Message: fmt.Sprintf(format, args...), Recoverable: false})
	s.state = stateErrored
	s.release()
}
