// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/neurocluster/neurocluster-go"
	"github.com/neurocluster/neurocluster-go/internal/pool"
	"github.com/neurocluster/neurocluster-go/stream"
)

// DefaultModel is the model used for runs that do not pick one explicitly.
const DefaultModel = "anthropic/claude-sonnet-4-20250514"

// Agent is a lightweight handle on one agent resource, wrapping the Agents
// service with the common update and run flows.
type Agent struct {
	client *Client

	// ID is the agent's resource id.
	ID string

	// Model is the model used by Run when none is given.
	Model string
}

// Agent returns a handle on an existing agent.
func (c *Client) Agent(agentID string) *Agent {
	return &Agent{client: c, ID: agentID, Model: DefaultModel}
}

// CreateAgent creates an agent from a name, system prompt, and tool grants,
// and returns a handle on it.
func (c *Client) CreateAgent(ctx context.Context, name, systemPrompt string, tools []neurocluster.AgentPressTool, mcps []neurocluster.MCPTools, allowedTools []string) (*Agent, error) {
	sel, err := neurocluster.ProcessTools(tools, mcps, allowedTools)
	if err != nil {
		return nil, err
	}
	created, err := c.Agents.Create(ctx, &neurocluster.AgentCreateRequest{
		Name:            name,
		SystemPrompt:    systemPrompt,
		AgentPressTools: sel.AgentPressTools,
		CustomMCPs:      sel.CustomMCPs,
	})
	if err != nil {
		return nil, err
	}
	return c.Agent(created.AgentID), nil
}

// AgentUpdate describes an in-place agent update. Tool fields replace the
// whole tool configuration when set; otherwise the current configuration is
// fetched and filtered through AllowedTools.
type AgentUpdate struct {
	Name         string
	SystemPrompt string

	Tools        []neurocluster.AgentPressTool
	MCPs         []neurocluster.MCPTools
	AllowedTools []string

	ConfiguredMCPs []neurocluster.CustomMCP
	ReplaceMCPs    *bool
}

// Update applies an AgentUpdate.
func (a *Agent) Update(ctx context.Context, up *AgentUpdate) error {
	var (
		agentpress map[neurocluster.AgentPressTool]neurocluster.ToolConfig
		customMCPs []neurocluster.CustomMCP
		configured = up.ConfiguredMCPs
	)
	if len(up.Tools) > 0 || len(up.MCPs) > 0 {
		sel, err := neurocluster.ProcessTools(up.Tools, up.MCPs, up.AllowedTools)
		if err != nil {
			return err
		}
		agentpress, customMCPs = sel.AgentPressTools, sel.CustomMCPs
	} else {
		details, err := a.Details(ctx)
		if err != nil {
			return fmt.Errorf("fetch current agent config: %w", err)
		}
		agentpress, customMCPs = details.AgentPressTools, details.CustomMCPs
		if configured == nil {
			configured = details.ConfiguredMCPs
		}
		if up.AllowedTools != nil {
			neurocluster.FilterTools(agentpress, customMCPs, up.AllowedTools)
		}
	}

	_, err := a.client.Agents.Update(ctx, a.ID, &neurocluster.AgentUpdateRequest{
		Name:            up.Name,
		SystemPrompt:    up.SystemPrompt,
		ConfiguredMCPs:  configured,
		CustomMCPs:      customMCPs,
		AgentPressTools: agentpress,
		ReplaceMCPs:     up.ReplaceMCPs,
	})
	return err
}

// Details fetches the agent resource.
func (a *Agent) Details(ctx context.Context) (*neurocluster.Agent, error) {
	return a.client.Agents.Get(ctx, a.ID)
}

// Run posts prompt to the thread and starts this agent on it.
func (a *Agent) Run(ctx context.Context, thread *Thread, prompt string) (*Run, error) {
	if _, err := thread.AddMessage(ctx, prompt); err != nil {
		return nil, err
	}
	req := neurocluster.DefaultAgentStartRequest()
	req.AgentID = a.ID
	req.ModelName = a.Model
	return thread.StartAgent(ctx, req)
}

// Thread is a handle on one conversation thread.
type Thread struct {
	client *Client

	// ID is the thread's resource id.
	ID string
}

// Thread returns a handle on an existing thread.
func (c *Client) Thread(threadID string) *Thread {
	return &Thread{client: c, ID: threadID}
}

// NewThread creates a thread and returns a handle on it. name optionally
// names the backing project.
func (c *Client) NewThread(ctx context.Context, name string) (*Thread, error) {
	created, err := c.Threads.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Thread(created.ThreadID), nil
}

// AddMessage adds a plain user message to the thread.
func (t *Thread) AddMessage(ctx context.Context, message string) (*neurocluster.Message, error) {
	return t.client.Threads.AddMessage(ctx, t.ID, message)
}

// Messages returns the thread's messages in chronological order.
func (t *Thread) Messages(ctx context.Context) ([]neurocluster.Message, error) {
	list, err := t.client.Threads.Messages(ctx, t.ID, "asc")
	if err != nil {
		return nil, err
	}
	return list.Messages, nil
}

// StartAgent starts an agent run on the thread.
func (t *Thread) StartAgent(ctx context.Context, req *neurocluster.AgentStartRequest) (*Run, error) {
	resp, err := t.client.Threads.StartAgent(ctx, t.ID, req)
	if err != nil {
		return nil, err
	}
	return &Run{client: t.client, ID: resp.AgentRunID, ThreadID: t.ID}, nil
}

// Run is a handle on one agent run.
type Run struct {
	client *Client

	ID       string
	ThreadID string
}

// Stream opens the run's live event stream.
func (r *Run) Stream(ctx context.Context) (*RunStream, error) {
	return r.client.StreamAgentRun(ctx, r.ID)
}

// Stop stops the run.
func (r *Run) Stop(ctx context.Context) error {
	return r.client.Threads.StopAgent(ctx, r.ID)
}

// ToolInvocation is one completed tool call observed on a stream.
type ToolInvocation struct {
	ID        string
	Name      string
	Arguments string
}

// Transcript is the assembled output of a run's event stream.
type Transcript struct {
	// Text is the concatenated assistant-visible text.
	Text string

	// ToolCalls lists completed tool calls in order of appearance.
	ToolCalls []ToolInvocation

	// Statuses lists the status updates seen on the stream.
	Statuses []stream.StatusUpdate

	// Err is the terminal error event, if the stream ended with one.
	Err *stream.ErrorEvent

	// Completed is true when the stream ended with a Done event. A
	// transcript that is neither Completed nor carries Err was aborted
	// before its terminal event.
	Completed bool
}

// Transcript consumes the run's event stream to completion and assembles
// the final output.
func (r *Run) Transcript(ctx context.Context) (*Transcript, error) {
	rs, err := r.Stream(ctx)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	return CollectTranscript(ctx, rs.Session)
}

// CollectTranscript drains a decode session into a Transcript.
func CollectTranscript(ctx context.Context, s *stream.Session) (*Transcript, error) {
	text := pool.String.Get()
	defer pool.String.Put(text)

	var (
		tr   Transcript
		args = make(map[string]*strings.Builder)
	)
	for {
		ev, err := s.Next(ctx)
		if err == io.EOF {
			tr.Text = text.String()
			return &tr, nil
		}
		if err != nil {
			return nil, err
		}
		switch e := ev.(type) {
		case stream.TextDelta:
			text.WriteString(e.Content)
		case stream.ToolCallStart:
			args[e.ID] = &strings.Builder{}
			tr.ToolCalls = append(tr.ToolCalls, ToolInvocation{ID: e.ID, Name: e.Name})
		case stream.ToolCallArgumentsDelta:
			if b, ok := args[e.ID]; ok {
				b.WriteString(e.Fragment)
			}
		case stream.ToolCallEnd:
			if b, ok := args[e.ID]; ok {
				for i := range tr.ToolCalls {
					if tr.ToolCalls[i].ID == e.ID {
						tr.ToolCalls[i].Arguments = b.String()
					}
				}
				delete(args, e.ID)
			}
		case stream.StatusUpdate:
			tr.Statuses = append(tr.Statuses, e)
		case stream.ErrorEvent:
			tr.Err = &e
		case stream.Done:
			tr.Completed = true
		}
	}
}
