// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Project is the workspace a thread belongs to.
type Project struct {
	ProjectID   string         `json:"project_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	AccountID   string         `json:"account_id"`
	Sandbox     map[string]any `json:"sandbox"`
	IsPublic    bool           `json:"is_public"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// Thread is a conversation thread.
type Thread struct {
	ThreadID        string         `json:"thread_id"`
	AccountID       string         `json:"account_id"`
	ProjectID       string         `json:"project_id,omitempty"`
	Metadata        map[string]any `json:"metadata"`
	IsPublic        bool           `json:"is_public"`
	Project         *Project       `json:"project,omitempty"`
	MessageCount    int            `json:"message_count,omitempty"`
	RecentAgentRuns []AgentRun     `json:"recent_agent_runs,omitempty"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

// ThreadList is the paginated envelope for thread listings.
type ThreadList struct {
	Threads    []Thread   `json:"threads"`
	Pagination Pagination `json:"pagination"`
}

// Message is a single message stored on a thread. Content is the raw JSON
// payload as stored server-side; its shape depends on Type.
type Message struct {
	MessageID      string         `json:"message_id"`
	ThreadID       string         `json:"thread_id"`
	Type           MessageType    `json:"type"`
	IsLLMMessage   bool           `json:"is_llm_message"`
	Content        jsontext.Value `json:"content"`
	AgentID        string         `json:"agent_id,omitempty"`
	AgentVersionID string         `json:"agent_version_id,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

// ContentObject is the structured content of an assistant or user message.
type ContentObject struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a model-initiated function call recorded on a message.
type ToolCall struct {
	ID        string         `json:"id,omitempty"`
	Type      string         `json:"type,omitempty"`
	Name      string         `json:"name,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Function  map[string]any `json:"function,omitempty"`
}

// ContentText decodes the message content as a ContentObject and returns its
// text. Plain string content is returned verbatim; anything else comes back
// re-encoded as JSON.
func (m *Message) ContentText() string {
	var s string
	if err := json.Unmarshal([]byte(m.Content), &s); err == nil {
		return s
	}
	var obj ContentObject
	if err := json.Unmarshal([]byte(m.Content), &obj); err == nil && obj.Content != "" {
		return obj.Content
	}
	return string(m.Content)
}

// IsUserMessage reports whether this message was authored by the user.
func (m *Message) IsUserMessage() bool { return m.Type == MessageTypeUser }

// IsAssistantMessage reports whether this message was authored by the agent.
func (m *Message) IsAssistantMessage() bool { return m.Type == MessageTypeAssistant }

// MessageList is the envelope for message listings.
type MessageList struct {
	Messages []Message `json:"messages"`
}

// MessageCreateRequest creates a structured message on a thread.
type MessageCreateRequest struct {
	Content      string      `json:"content"`
	Type         MessageType `json:"type"`
	IsLLMMessage bool        `json:"is_llm_message"`
}

// NewUserMessage builds a user message creation request.
func NewUserMessage(content string) *MessageCreateRequest {
	return &MessageCreateRequest{Content: content, Type: MessageTypeUser, IsLLMMessage: true}
}

// NewSystemMessage builds a system message creation request.
func NewSystemMessage(content string) *MessageCreateRequest {
	return &MessageCreateRequest{Content: content, Type: MessageTypeSystem, IsLLMMessage: false}
}

// RunError describes why an agent run failed.
type RunError struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// AgentRun is one execution of an agent against a thread.
type AgentRun struct {
	ID             string    `json:"id"`
	ThreadID       string    `json:"thread_id"`
	Status         string    `json:"status"`
	AgentID        string    `json:"agent_id,omitempty"`
	AgentVersionID string    `json:"agent_version_id,omitempty"`
	StartedAt      string    `json:"started_at,omitempty"`
	CompletedAt    string    `json:"completed_at,omitempty"`
	Error          *RunError `json:"error,omitempty"`
	CreatedAt      string    `json:"created_at,omitempty"`
	UpdatedAt      string    `json:"updated_at,omitempty"`
}

// AgentStartRequest starts an agent run on a thread. Zero values are sent
// explicitly; the server treats them as deliberate choices.
type AgentStartRequest struct {
	ModelName            string `json:"model_name,omitempty"`
	AgentID              string `json:"agent_id,omitempty"`
	EnableThinking       bool   `json:"enable_thinking"`
	ReasoningEffort      string `json:"reasoning_effort"`
	Stream               bool   `json:"stream"`
	EnableContextManager bool   `json:"enable_context_manager"`
	EnablePromptCaching  bool   `json:"enable_prompt_caching"`
}

// DefaultAgentStartRequest returns the server-default run settings.
func DefaultAgentStartRequest() *AgentStartRequest {
	return &AgentStartRequest{
		ReasoningEffort:     "low",
		Stream:              true,
		EnablePromptCaching: true,
	}
}

// AgentStartResponse acknowledges a started run.
type AgentStartResponse struct {
	AgentRunID string `json:"agent_run_id"`
	Status     string `json:"status"`
}

// CreateThreadResponse is returned when a new thread is created.
type CreateThreadResponse struct {
	ThreadID  string `json:"thread_id"`
	ProjectID string `json:"project_id"`
}

// ThreadAgent reports which agent is bound to a thread and where the binding
// came from ("thread", "default", "none", or "missing").
type ThreadAgent struct {
	Agent   *Agent `json:"agent,omitempty"`
	Source  string `json:"source"`
	Message string `json:"message"`
}
