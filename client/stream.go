// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"io"
	"net/http"

	"github.com/neurocluster/neurocluster-go/client/internal/sse"
	"github.com/neurocluster/neurocluster-go/stream"
)

// RunStream is the live event stream of an agent run. It embeds a
// stream.Session; consume it with Next or All, then Close to release the
// connection.
type RunStream struct {
	*stream.Session
	src *sse.Source
}

// Close abandons the stream and closes the underlying connection.
func (rs *RunStream) Close() error {
	rs.Session.Close()
	return rs.src.Close()
}

// StreamAgentRun opens the event stream of a running agent. The connection
// stays open until the run finishes or the stream is closed; the client's
// request timeout does not apply.
func (c *Client) StreamAgentRun(ctx context.Context, agentRunID string) (*RunStream, error) {
	if c.limiter != nil {
		release, err := c.limiter.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		// The slot gates connection setup only, not the stream's lifetime.
		defer release()
	}

	path := "/agent-run/" + agentRunID + "/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.creds != nil {
		if err := c.creds.Apply(req.Header); err != nil {
			return nil, err
		}
	}

	resp, err := c.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, apiError(http.MethodGet, path, resp.StatusCode, body)
	}

	src := sse.NewSource(resp.Body)
	return &RunStream{Session: stream.NewSession(src), src: src}, nil
}
