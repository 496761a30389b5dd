// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/neurocluster/neurocluster-go"
)

// ThreadsService manages conversation threads and agent runs.
type ThreadsService struct {
	client *Client
}

// ThreadListParams paginates thread listings.
type ThreadListParams struct {
	Page  int
	Limit int
}

func (p *ThreadListParams) values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// List returns the caller's threads with associated project data.
func (s *ThreadsService) List(ctx context.Context, params *ThreadListParams) (*neurocluster.ThreadList, error) {
	var out neurocluster.ThreadList
	if err := s.client.get(ctx, "/threads", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a thread with its project, message count, and recent runs.
func (s *ThreadsService) Get(ctx context.Context, threadID string) (*neurocluster.Thread, error) {
	var out neurocluster.Thread
	if err := s.client.get(ctx, "/threads/"+threadID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a new thread. name optionally names the backing project.
func (s *ThreadsService) Create(ctx context.Context, name string) (*neurocluster.CreateThreadResponse, error) {
	form := url.Values{}
	if name != "" {
		form.Set("name", name)
	}
	var out neurocluster.CreateThreadResponse
	if err := s.client.postForm(ctx, "/threads", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Messages returns the messages of a thread. order is "asc" or "desc";
// empty means ascending.
func (s *ThreadsService) Messages(ctx context.Context, threadID, order string) (*neurocluster.MessageList, error) {
	q := url.Values{}
	if order == "" {
		order = "asc"
	}
	q.Set("order", order)
	var out neurocluster.MessageList
	if err := s.client.get(ctx, "/threads/"+threadID+"/messages", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMessage adds a plain user message to a thread.
func (s *ThreadsService) AddMessage(ctx context.Context, threadID, message string) (*neurocluster.Message, error) {
	form := url.Values{}
	form.Set("message", message)
	var out neurocluster.Message
	if err := s.client.postForm(ctx, "/threads/"+threadID+"/messages/add", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMessage creates a structured message on a thread.
func (s *ThreadsService) CreateMessage(ctx context.Context, threadID string, req *neurocluster.MessageCreateRequest) (*neurocluster.Message, error) {
	var out neurocluster.Message
	if err := s.client.post(ctx, "/threads/"+threadID+"/messages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMessage deletes a message from a thread.
func (s *ThreadsService) DeleteMessage(ctx context.Context, threadID, messageID string) error {
	return s.client.delete(ctx, "/threads/"+threadID+"/messages/"+messageID)
}

// Agent reports which agent is bound to a thread.
func (s *ThreadsService) Agent(ctx context.Context, threadID string) (*neurocluster.ThreadAgent, error) {
	var out neurocluster.ThreadAgent
	if err := s.client.get(ctx, "/thread/"+threadID+"/agent", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartAgent starts an agent run on a thread.
func (s *ThreadsService) StartAgent(ctx context.Context, threadID string, req *neurocluster.AgentStartRequest) (*neurocluster.AgentStartResponse, error) {
	if req == nil {
		req = neurocluster.DefaultAgentStartRequest()
	}
	var out neurocluster.AgentStartResponse
	if err := s.client.post(ctx, "/thread/"+threadID+"/agent/start", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StopAgent stops a running agent.
func (s *ThreadsService) StopAgent(ctx context.Context, agentRunID string) error {
	return s.client.post(ctx, "/agent-run/"+agentRunID+"/stop", nil, nil)
}

// AgentRunStreamURL returns the absolute URL of an agent run's event
// stream, for callers that manage the SSE connection themselves. Most
// callers should use Client.StreamAgentRun instead.
func (s *ThreadsService) AgentRunStreamURL(agentRunID string) string {
	return s.client.baseURL + "/agent-run/" + agentRunID + "/stream"
}
