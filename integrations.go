// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

// PipedreamApp is one app available on the Pipedream integration platform.
type PipedreamApp struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
}

// PipedreamProfile is a stored credential profile for a Pipedream app.
type PipedreamProfile struct {
	ProfileID    string   `json:"profile_id"`
	ProfileName  string   `json:"profile_name"`
	AppSlug      string   `json:"app_slug"`
	AppName      string   `json:"app_name"`
	DisplayName  string   `json:"display_name,omitempty"`
	Description  string   `json:"description,omitempty"`
	IsDefault    bool     `json:"is_default"`
	IsActive     bool     `json:"is_active"`
	EnabledTools []string `json:"enabled_tools,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// PipedreamProfileCreateRequest creates a credential profile.
type PipedreamProfileCreateRequest struct {
	ProfileName    string   `json:"profile_name"`
	AppSlug        string   `json:"app_slug"`
	AppName        string   `json:"app_name"`
	Description    string   `json:"description,omitempty"`
	IsDefault      bool     `json:"is_default,omitempty"`
	OAuthAppID     string   `json:"oauth_app_id,omitempty"`
	EnabledTools   []string `json:"enabled_tools,omitempty"`
	ExternalUserID string   `json:"external_user_id,omitempty"`
}

// PipedreamProfileUpdateRequest updates a credential profile.
type PipedreamProfileUpdateRequest struct {
	ProfileName  string   `json:"profile_name,omitempty"`
	DisplayName  string   `json:"display_name,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	IsDefault    *bool    `json:"is_default,omitempty"`
	EnabledTools []string `json:"enabled_tools,omitempty"`
}

// MCPServer describes a discovered MCP server backing an integration.
type MCPServer struct {
	AppSlug        string           `json:"app_slug"`
	AppName        string           `json:"app_name"`
	ServerURL      string           `json:"server_url"`
	ProjectID      string           `json:"project_id,omitempty"`
	Environment    string           `json:"environment,omitempty"`
	ExternalUserID string           `json:"external_user_id,omitempty"`
	OAuthAppID     string           `json:"oauth_app_id,omitempty"`
	Status         string           `json:"status"`
	AvailableTools []map[string]any `json:"available_tools,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// MCPDiscovery lists the MCP servers reachable through an integration.
type MCPDiscovery struct {
	Success    bool        `json:"success"`
	MCPServers []MCPServer `json:"mcp_servers"`
	Count      int         `json:"count"`
	Error      string      `json:"error,omitempty"`
}

// ConnectionToken is a short-lived token used to link an external account.
type ConnectionToken struct {
	Success        bool   `json:"success"`
	Link           string `json:"link,omitempty"`
	Token          string `json:"token,omitempty"`
	ExternalUserID string `json:"external_user_id"`
	App            string `json:"app,omitempty"`
	ExpiresAt      string `json:"expires_at,omitempty"`
	Error          string `json:"error,omitempty"`
}

// PipedreamTool is one tool exposed by a Pipedream profile.
type PipedreamTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// PipedreamToolsInfo lists the tools available to an agent through a
// Pipedream profile.
type PipedreamToolsInfo struct {
	ProfileID    string          `json:"profile_id"`
	AppName      string          `json:"app_name"`
	ProfileName  string          `json:"profile_name"`
	Tools        []PipedreamTool `json:"tools"`
	HasMCPConfig bool            `json:"has_mcp_config"`
	Error        string          `json:"error,omitempty"`
}

// PipedreamToolsUpdateRequest sets the enabled tools on a profile binding.
type PipedreamToolsUpdateRequest struct {
	EnabledTools []string `json:"enabled_tools"`
}

// PipedreamToolsUpdateResult reports the outcome of a tools update.
type PipedreamToolsUpdateResult struct {
	Success      bool     `json:"success"`
	EnabledTools []string `json:"enabled_tools"`
	TotalTools   int      `json:"total_tools"`
	VersionName  string   `json:"version_name,omitempty"`
}

// CustomMCPTool is one tool exposed by a custom MCP server.
type CustomMCPTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// CustomMCPToolsInfo lists the tools a custom MCP server offers an agent.
type CustomMCPToolsInfo struct {
	Tools        []CustomMCPTool `json:"tools"`
	HasMCPConfig bool            `json:"has_mcp_config"`
	ServerType   string          `json:"server_type"`
	ServerURL    string          `json:"server_url"`
}

// CustomMCPToolsUpdateRequest sets the enabled tools of a custom MCP server.
type CustomMCPToolsUpdateRequest struct {
	URL          string   `json:"url"`
	Type         string   `json:"type"`
	EnabledTools []string `json:"enabled_tools"`
}

// CustomMCPToolsUpdateResult reports the outcome of a custom MCP update.
type CustomMCPToolsUpdateResult struct {
	Success      bool     `json:"success"`
	EnabledTools []string `json:"enabled_tools"`
	TotalTools   int      `json:"total_tools"`
}

// ComposioToolkit is one toolkit on the Composio integration platform.
type ComposioToolkit struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// ComposioProfile is a stored credential profile for a Composio toolkit.
type ComposioProfile struct {
	ProfileID          string `json:"profile_id"`
	ProfileName        string `json:"profile_name"`
	DisplayName        string `json:"display_name"`
	ToolkitSlug        string `json:"toolkit_slug"`
	ToolkitName        string `json:"toolkit_name"`
	MCPURL             string `json:"mcp_url"`
	RedirectURL        string `json:"redirect_url,omitempty"`
	ConnectedAccountID string `json:"connected_account_id,omitempty"`
	IsConnected        bool   `json:"is_connected"`
	IsDefault          bool   `json:"is_default"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// ComposioIntegrationStatus tracks a Composio integration handshake.
type ComposioIntegrationStatus struct {
	Status             string `json:"status"`
	Toolkit            string `json:"toolkit"`
	AuthConfigID       string `json:"auth_config_id"`
	ConnectedAccountID string `json:"connected_account_id"`
	MCPServerID        string `json:"mcp_server_id"`
	FinalMCPURL        string `json:"final_mcp_url"`
	ProfileID          string `json:"profile_id,omitempty"`
	RedirectURL        string `json:"redirect_url,omitempty"`
}

// ComposioTool is one tool inside a Composio toolkit.
type ComposioTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}
