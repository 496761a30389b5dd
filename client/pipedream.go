// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/neurocluster/neurocluster-go"
)

// PipedreamService wraps the Pipedream integration platform endpoints:
// app discovery, credential profiles, and MCP server plumbing.
type PipedreamService struct {
	client *Client
}

// PipedreamAppsParams filters the app catalog.
type PipedreamAppsParams struct {
	// After is the pagination cursor from a previous page.
	After string

	// Query searches app names.
	Query string

	Category string
}

// PipedreamAppList is one page of the Pipedream app catalog.
type PipedreamAppList struct {
	Success    bool                        `json:"success"`
	Apps       []neurocluster.PipedreamApp `json:"apps"`
	PageInfo   map[string]any              `json:"page_info,omitempty"`
	TotalCount int                         `json:"total_count,omitempty"`
}

// Apps lists apps available on the integration platform.
func (s *PipedreamService) Apps(ctx context.Context, params *PipedreamAppsParams) (*PipedreamAppList, error) {
	q := url.Values{}
	if params != nil {
		if params.After != "" {
			q.Set("after", params.After)
		}
		if params.Query != "" {
			q.Set("q", params.Query)
		}
		if params.Category != "" {
			q.Set("category", params.Category)
		}
	}
	var out PipedreamAppList
	if err := s.client.get(ctx, "/pipedream/apps", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AppTools lists the tools exposed by one app.
func (s *PipedreamService) AppTools(ctx context.Context, appSlug string) (map[string]any, error) {
	var out map[string]any
	if err := s.client.get(ctx, "/pipedream/apps/"+appSlug+"/tools", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profiles lists credential profiles, optionally filtered by app and
// active state.
func (s *PipedreamService) Profiles(ctx context.Context, appSlug string, isActive *bool) ([]neurocluster.PipedreamProfile, error) {
	q := url.Values{}
	if appSlug != "" {
		q.Set("app_slug", appSlug)
	}
	if isActive != nil {
		q.Set("is_active", strconv.FormatBool(*isActive))
	}
	var out []neurocluster.PipedreamProfile
	if err := s.client.get(ctx, "/pipedream/profiles", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns one credential profile.
func (s *PipedreamService) Profile(ctx context.Context, profileID string) (*neurocluster.PipedreamProfile, error) {
	var out neurocluster.PipedreamProfile
	if err := s.client.get(ctx, "/pipedream/profiles/"+profileID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProfile creates a credential profile.
func (s *PipedreamService) CreateProfile(ctx context.Context, req *neurocluster.PipedreamProfileCreateRequest) (*neurocluster.PipedreamProfile, error) {
	var out neurocluster.PipedreamProfile
	if err := s.client.post(ctx, "/pipedream/profiles", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates a credential profile.
func (s *PipedreamService) UpdateProfile(ctx context.Context, profileID string, req *neurocluster.PipedreamProfileUpdateRequest) (*neurocluster.PipedreamProfile, error) {
	var out neurocluster.PipedreamProfile
	if err := s.client.put(ctx, "/pipedream/profiles/"+profileID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProfile deletes a credential profile.
func (s *PipedreamService) DeleteProfile(ctx context.Context, profileID string) error {
	return s.client.delete(ctx, "/pipedream/profiles/"+profileID)
}

type mcpDiscoverRequest struct {
	AppSlug        string `json:"app_slug,omitempty"`
	OAuthAppID     string `json:"oauth_app_id,omitempty"`
	ExternalUserID string `json:"external_user_id,omitempty"`
}

// DiscoverMCPServers lists MCP servers available for the account, optionally
// narrowed to one app.
func (s *PipedreamService) DiscoverMCPServers(ctx context.Context, appSlug, oauthAppID string) (*neurocluster.MCPDiscovery, error) {
	var out neurocluster.MCPDiscovery
	req := &mcpDiscoverRequest{AppSlug: appSlug, OAuthAppID: oauthAppID}
	if err := s.client.post(ctx, "/pipedream/mcp/discover", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoverMCPServersForProfile lists MCP servers for a specific external
// user's profile.
func (s *PipedreamService) DiscoverMCPServersForProfile(ctx context.Context, externalUserID, appSlug, oauthAppID string) (*neurocluster.MCPDiscovery, error) {
	var out neurocluster.MCPDiscovery
	req := &mcpDiscoverRequest{ExternalUserID: externalUserID, AppSlug: appSlug, OAuthAppID: oauthAppID}
	if err := s.client.post(ctx, "/pipedream/mcp/discover-profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConnectMCP provisions an MCP connection for an app.
func (s *PipedreamService) ConnectMCP(ctx context.Context, appSlug, oauthAppID string) (*neurocluster.MCPServer, error) {
	var out neurocluster.MCPServer
	req := &mcpDiscoverRequest{AppSlug: appSlug, OAuthAppID: oauthAppID}
	if err := s.client.post(ctx, "/pipedream/mcp/connect", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateConnectionToken creates a short-lived token for the OAuth linking
// flow. app optionally preselects the app to connect.
func (s *PipedreamService) CreateConnectionToken(ctx context.Context, app string) (*neurocluster.ConnectionToken, error) {
	req := struct {
		App string `json:"app,omitempty"`
	}{App: app}
	var out neurocluster.ConnectionToken
	if err := s.client.post(ctx, "/pipedream/connection-tokens", &req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
