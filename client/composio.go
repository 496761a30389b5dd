// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/neurocluster/neurocluster-go"
)

// ComposioService wraps the Composio integration platform endpoints.
type ComposioService struct {
	client *Client
}

// Categories lists toolkit categories.
func (s *ComposioService) Categories(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := s.client.get(ctx, "/composio/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ComposioToolkitsParams filters the toolkit catalog.
type ComposioToolkitsParams struct {
	Search   string
	Category string
	Limit    int
	Cursor   string
}

// ComposioToolkitList is one page of the toolkit catalog.
type ComposioToolkitList struct {
	Success  bool                           `json:"success"`
	Toolkits []neurocluster.ComposioToolkit `json:"toolkits"`
	Cursor   string                         `json:"cursor,omitempty"`
}

// Toolkits lists available toolkits.
func (s *ComposioService) Toolkits(ctx context.Context, params *ComposioToolkitsParams) (*ComposioToolkitList, error) {
	q := url.Values{}
	if params != nil {
		if params.Search != "" {
			q.Set("search", params.Search)
		}
		if params.Category != "" {
			q.Set("category", params.Category)
		}
		if params.Limit > 0 {
			q.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.Cursor != "" {
			q.Set("cursor", params.Cursor)
		}
	}
	var out ComposioToolkitList
	if err := s.client.get(ctx, "/composio/toolkits", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToolkitDetails returns the full metadata of one toolkit.
func (s *ComposioService) ToolkitDetails(ctx context.Context, toolkitSlug string) (map[string]any, error) {
	var out map[string]any
	if err := s.client.get(ctx, "/composio/toolkits/"+toolkitSlug+"/details", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ComposioToolList is one page of a toolkit's tools.
type ComposioToolList struct {
	Success bool                        `json:"success"`
	Tools   []neurocluster.ComposioTool `json:"tools"`
	Cursor  string                      `json:"cursor,omitempty"`
}

// Tools lists the tools of a toolkit.
func (s *ComposioService) Tools(ctx context.Context, toolkitSlug string, limit int, cursor string) (*ComposioToolList, error) {
	if limit <= 0 {
		limit = 50
	}
	req := struct {
		Limit  int    `json:"limit"`
		Cursor string `json:"cursor,omitempty"`
	}{Limit: limit, Cursor: cursor}
	var out ComposioToolList
	if err := s.client.post(ctx, "/composio/toolkits/"+toolkitSlug+"/tools", &req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComposioIntegrateRequest integrates a toolkit into the account.
type ComposioIntegrateRequest struct {
	ToolkitSlug   string `json:"toolkit_slug"`
	ProfileName   string `json:"profile_name,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	MCPServerName string `json:"mcp_server_name,omitempty"`
	SaveAsProfile bool   `json:"save_as_profile"`
}

// Integrate provisions a toolkit integration, optionally saving it as a
// profile.
func (s *ComposioService) Integrate(ctx context.Context, req *ComposioIntegrateRequest) (*neurocluster.ComposioIntegrationStatus, error) {
	var out neurocluster.ComposioIntegrationStatus
	if err := s.client.post(ctx, "/composio/integrate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComposioProfileCreateRequest creates a Composio credential profile.
type ComposioProfileCreateRequest struct {
	ToolkitSlug      string            `json:"toolkit_slug"`
	ProfileName      string            `json:"profile_name"`
	DisplayName      string            `json:"display_name,omitempty"`
	MCPServerName    string            `json:"mcp_server_name,omitempty"`
	IsDefault        bool              `json:"is_default"`
	InitiationFields map[string]string `json:"initiation_fields,omitempty"`
	CustomAuthConfig map[string]string `json:"custom_auth_config,omitempty"`
	UseCustomAuth    bool              `json:"use_custom_auth"`
}

// CreateProfile creates a credential profile.
func (s *ComposioService) CreateProfile(ctx context.Context, req *ComposioProfileCreateRequest) (*neurocluster.ComposioProfile, error) {
	var out neurocluster.ComposioProfile
	if err := s.client.post(ctx, "/composio/profiles", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profiles lists credential profiles, optionally filtered by toolkit.
func (s *ComposioService) Profiles(ctx context.Context, toolkitSlug string) ([]neurocluster.ComposioProfile, error) {
	q := url.Values{}
	if toolkitSlug != "" {
		q.Set("toolkit_slug", toolkitSlug)
	}
	var out []neurocluster.ComposioProfile
	if err := s.client.get(ctx, "/composio/profiles", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns one credential profile.
func (s *ComposioService) Profile(ctx context.Context, profileID string) (*neurocluster.ComposioProfile, error) {
	var out neurocluster.ComposioProfile
	if err := s.client.get(ctx, "/composio/profiles/"+profileID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileMCPConfig returns the MCP connection config of a profile.
func (s *ComposioService) ProfileMCPConfig(ctx context.Context, profileID string) (map[string]any, error) {
	var out map[string]any
	if err := s.client.get(ctx, "/composio/profiles/"+profileID+"/mcp-config", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscoverTools triggers tool discovery on a profile's MCP server.
func (s *ComposioService) DiscoverTools(ctx context.Context, profileID string) (map[string]any, error) {
	var out map[string]any
	if err := s.client.post(ctx, "/composio/profiles/"+profileID+"/discover-tools", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckProfileName reports whether a profile name is still available.
func (s *ComposioService) CheckProfileName(ctx context.Context, profileName string) (map[string]any, error) {
	q := url.Values{}
	q.Set("profile_name", profileName)
	var out map[string]any
	if err := s.client.get(ctx, "/composio/profiles/check-name-availability", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IntegrationStatus polls the handshake state of a connected account.
func (s *ComposioService) IntegrationStatus(ctx context.Context, connectedAccountID string) (*neurocluster.ComposioIntegrationStatus, error) {
	var out neurocluster.ComposioIntegrationStatus
	if err := s.client.get(ctx, "/composio/integration/"+connectedAccountID+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
