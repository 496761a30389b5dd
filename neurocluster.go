// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package neurocluster defines the shared data model for the NeuroCluster
// agent-management API: agents, threads, messages, agent runs, and the
// integration-platform resources exposed by the hosted service.
//
// The HTTP client lives in the client subpackage; the streaming decoder for
// agent-run output lives in the stream subpackage.
package neurocluster

// Version is the current version of the NeuroCluster Go SDK.
const Version = "0.3.0"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.neurocluster.com/api"

// HTTP header names used by the API.
const (
	HeaderAPIKey     = "X-API-Key"
	HeaderMCPURL     = "X-MCP-URL"
	HeaderMCPType    = "X-MCP-Type"
	HeaderMCPHeaders = "X-MCP-Headers"
)

// ContentTypeJSON is the media type for JSON request and response bodies.
const ContentTypeJSON = "application/json"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// MessageType represents the type of a thread message.
type MessageType string

const (
	// MessageTypeUser is a user-authored message.
	MessageTypeUser MessageType = "user"

	// MessageTypeAssistant is an assistant-authored message.
	MessageTypeAssistant MessageType = "assistant"

	// MessageTypeSystem is a system instruction message.
	MessageTypeSystem MessageType = "system"

	// MessageTypeTool carries a tool execution result.
	MessageTypeTool MessageType = "tool"

	// MessageTypeStatus is a non-content control message.
	MessageTypeStatus MessageType = "status"

	// MessageTypeResponseEnd marks the end of an assistant response,
	// carrying model and usage accounting.
	MessageTypeResponseEnd MessageType = "assistant_response_end"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeUser, MessageTypeAssistant, MessageTypeSystem,
		MessageTypeTool, MessageTypeStatus, MessageTypeResponseEnd:
		return true
	}
	return false
}

// Pagination describes the page envelope returned by list endpoints.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
