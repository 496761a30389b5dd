// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/neurocluster/neurocluster-go"
)

// AgentsService manages agent resources.
type AgentsService struct {
	client *Client
}

// AgentListParams filters and paginates agent listings.
type AgentListParams struct {
	// Page is 1-based; zero means the first page.
	Page int

	// Limit is items per page (1-100); zero means the server default.
	Limit int

	// Search matches against name and description.
	Search string

	// SortBy is one of name, created_at, updated_at, tools_count.
	SortBy string

	// SortOrder is asc or desc.
	SortOrder string

	HasDefault         *bool
	HasMCPTools        *bool
	HasAgentPressTools *bool

	// Tools is a comma-separated tool filter.
	Tools string
}

func (p *AgentListParams) values() url.Values {
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
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sort_order", p.SortOrder)
	}
	if p.HasDefault != nil {
		q.Set("has_default", strconv.FormatBool(*p.HasDefault))
	}
	if p.HasMCPTools != nil {
		q.Set("has_mcp_tools", strconv.FormatBool(*p.HasMCPTools))
	}
	if p.HasAgentPressTools != nil {
		q.Set("has_agentpress_tools", strconv.FormatBool(*p.HasAgentPressTools))
	}
	if p.Tools != "" {
		q.Set("tools", p.Tools)
	}
	return q
}

// List returns agents with pagination, search, sort, and filter support.
func (s *AgentsService) List(ctx context.Context, params *AgentListParams) (*neurocluster.AgentList, error) {
	var out neurocluster.AgentList
	if err := s.client.get(ctx, "/agents", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single agent.
func (s *AgentsService) Get(ctx context.Context, agentID string) (*neurocluster.Agent, error) {
	var out neurocluster.Agent
	if err := s.client.get(ctx, "/agents/"+agentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a new agent.
func (s *AgentsService) Create(ctx context.Context, req *neurocluster.AgentCreateRequest) (*neurocluster.Agent, error) {
	var out neurocluster.Agent
	if err := s.client.post(ctx, "/agents", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update updates an existing agent. Unset request fields keep their
// server-side values.
func (s *AgentsService) Update(ctx context.Context, agentID string, req *neurocluster.AgentUpdateRequest) (*neurocluster.Agent, error) {
	var out neurocluster.Agent
	if err := s.client.put(ctx, "/agents/"+agentID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes an agent.
func (s *AgentsService) Delete(ctx context.Context, agentID string) error {
	return s.client.delete(ctx, "/agents/"+agentID)
}

// Tools returns the agent's effective tool listing, grouped by origin.
func (s *AgentsService) Tools(ctx context.Context, agentID string) (*neurocluster.AgentTools, error) {
	var out neurocluster.AgentTools
	if err := s.client.get(ctx, "/agents/"+agentID+"/tools", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PipedreamTools returns the tools a Pipedream profile offers the agent.
// version optionally pins an agent version.
func (s *AgentsService) PipedreamTools(ctx context.Context, agentID, profileID, version string) (*neurocluster.PipedreamToolsInfo, error) {
	q := url.Values{}
	if version != "" {
		q.Set("version", version)
	}
	var out neurocluster.PipedreamToolsInfo
	if err := s.client.get(ctx, "/agents/"+agentID+"/pipedream-tools/"+profileID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePipedreamTools sets the enabled tools for a Pipedream profile
// binding.
func (s *AgentsService) UpdatePipedreamTools(ctx context.Context, agentID, profileID string, req *neurocluster.PipedreamToolsUpdateRequest) (*neurocluster.PipedreamToolsUpdateResult, error) {
	var out neurocluster.PipedreamToolsUpdateResult
	if err := s.client.put(ctx, "/agents/"+agentID+"/pipedream-tools/"+profileID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomMCPTools discovers the tools a custom MCP server offers the agent.
// The server location travels in headers rather than the body.
func (s *AgentsService) CustomMCPTools(ctx context.Context, agentID, mcpURL, mcpType string) (*neurocluster.CustomMCPToolsInfo, error) {
	headers := map[string]string{
		neurocluster.HeaderMCPURL: mcpURL,
	}
	if mcpType != "" {
		headers[neurocluster.HeaderMCPType] = mcpType
	}
	var out neurocluster.CustomMCPToolsInfo
	if err := s.client.do(ctx, "GET", "/agents/"+agentID+"/custom-mcp-tools", nil, nil, headers, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomMCPTools sets the enabled tools of a custom MCP server.
func (s *AgentsService) UpdateCustomMCPTools(ctx context.Context, agentID string, req *neurocluster.CustomMCPToolsUpdateRequest) (*neurocluster.CustomMCPToolsUpdateResult, error) {
	var out neurocluster.CustomMCPToolsUpdateResult
	if err := s.client.post(ctx, "/agents/"+agentID+"/custom-mcp-tools", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuilderChatHistory returns the agent-builder conversation for an agent.
func (s *AgentsService) BuilderChatHistory(ctx context.Context, agentID string) (*neurocluster.BuilderChatHistory, error) {
	var out neurocluster.BuilderChatHistory
	if err := s.client.get(ctx, "/agents/"+agentID+"/builder-chat-history", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateIcon asks the service to pick an icon for an agent.
func (s *AgentsService) GenerateIcon(ctx context.Context, req *neurocluster.IconGenerationRequest) (*neurocluster.IconGeneration, error) {
	var out neurocluster.IconGeneration
	if err := s.client.post(ctx, "/agents/generate-icon", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export returns a portable JSON representation of the agent.
func (s *AgentsService) Export(ctx context.Context, agentID string) (*neurocluster.AgentExport, error) {
	var out neurocluster.AgentExport
	if err := s.client.get(ctx, "/agents/"+agentID+"/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeImport inspects exported agent JSON and reports what an import
// would need.
func (s *AgentsService) AnalyzeImport(ctx context.Context, req *neurocluster.ImportAnalysisRequest) (*neurocluster.ImportAnalysis, error) {
	var out neurocluster.ImportAnalysis
	if err := s.client.post(ctx, "/agents/json/analyze", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Import creates an agent from exported JSON.
func (s *AgentsService) Import(ctx context.Context, req *neurocluster.ImportRequest) (*neurocluster.ImportResult, error) {
	var out neurocluster.ImportResult
	if err := s.client.post(ctx, "/agents/json/import", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
