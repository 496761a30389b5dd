// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

// MCPConfig holds the connection configuration for an MCP server.
type MCPConfig struct {
	URL string `json:"url"`
}

// CustomMCP describes an MCP server attached to an agent, together with the
// subset of its tools the agent may call.
type CustomMCP struct {
	Name         string    `json:"name"`
	Type         string    `json:"type"` // "sse" or "http"
	Config       MCPConfig `json:"config"`
	EnabledTools []string  `json:"enabled_tools"`
}

// ToolConfig is the per-tool enablement entry for built-in AgentPress tools.
type ToolConfig struct {
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// Agent is an agent resource as returned by the API.
type Agent struct {
	AgentID                 string                        `json:"agent_id"`
	AccountID               string                        `json:"account_id"`
	Name                    string                        `json:"name"`
	Description             string                        `json:"description,omitempty"`
	SystemPrompt            string                        `json:"system_prompt"`
	ConfiguredMCPs          []CustomMCP                   `json:"configured_mcps"`
	CustomMCPs              []CustomMCP                   `json:"custom_mcps"`
	AgentPressTools         map[AgentPressTool]ToolConfig `json:"agentpress_tools"`
	IsDefault               bool                          `json:"is_default"`
	IsPublic                bool                          `json:"is_public,omitempty"`
	MarketplacePublishedAt  string                        `json:"marketplace_published_at,omitempty"`
	DownloadCount           int                           `json:"download_count,omitempty"`
	Tags                    []string                      `json:"tags,omitempty"`
	CurrentVersionID        string                        `json:"current_version_id,omitempty"`
	VersionCount            int                           `json:"version_count,omitempty"`
	CurrentVersion          *AgentVersion                 `json:"current_version,omitempty"`
	Metadata                map[string]any                `json:"metadata,omitempty"`
	CreatedAt               string                        `json:"created_at"`
	UpdatedAt               string                        `json:"updated_at,omitempty"`
}

// AgentVersion is a single immutable version of an agent configuration.
type AgentVersion struct {
	VersionID         string                        `json:"version_id"`
	AgentID           string                        `json:"agent_id"`
	VersionNumber     int                           `json:"version_number"`
	VersionName       string                        `json:"version_name"`
	SystemPrompt      string                        `json:"system_prompt"`
	Model             string                        `json:"model,omitempty"`
	ConfiguredMCPs    []CustomMCP                   `json:"configured_mcps"`
	CustomMCPs        []CustomMCP                   `json:"custom_mcps"`
	AgentPressTools   map[AgentPressTool]ToolConfig `json:"agentpress_tools"`
	IsActive          bool                          `json:"is_active"`
	Status            string                        `json:"status,omitempty"`
	ChangeDescription string                        `json:"change_description,omitempty"`
	PreviousVersionID string                        `json:"previous_version_id,omitempty"`
	CreatedBy         string                        `json:"created_by,omitempty"`
	CreatedAt         string                        `json:"created_at"`
	UpdatedAt         string                        `json:"updated_at"`
}

// AgentCreateRequest creates a new agent.
type AgentCreateRequest struct {
	Name            string                        `json:"name"`
	SystemPrompt    string                        `json:"system_prompt"`
	Description     string                        `json:"description,omitempty"`
	ConfiguredMCPs  []CustomMCP                   `json:"configured_mcps,omitempty"`
	CustomMCPs      []CustomMCP                   `json:"custom_mcps,omitempty"`
	AgentPressTools map[AgentPressTool]ToolConfig `json:"agentpress_tools,omitempty"`
	IsDefault       bool                          `json:"is_default,omitempty"`
	ProfileImageURL string                        `json:"profile_image_url,omitempty"`
	IconName        string                        `json:"icon_name,omitempty"`
	IconColor       string                        `json:"icon_color,omitempty"`
	IconBackground  string                        `json:"icon_background,omitempty"`
}

// AgentUpdateRequest updates an existing agent. Nil and zero fields are
// omitted from the request so unset fields keep their server-side values.
type AgentUpdateRequest struct {
	Name            string                        `json:"name,omitempty"`
	Description     string                        `json:"description,omitempty"`
	SystemPrompt    string                        `json:"system_prompt,omitempty"`
	ConfiguredMCPs  []CustomMCP                   `json:"configured_mcps,omitempty"`
	CustomMCPs      []CustomMCP                   `json:"custom_mcps,omitempty"`
	AgentPressTools map[AgentPressTool]ToolConfig `json:"agentpress_tools,omitempty"`
	IsDefault       *bool                         `json:"is_default,omitempty"`
	ProfileImageURL string                        `json:"profile_image_url,omitempty"`
	IconName        string                        `json:"icon_name,omitempty"`
	IconColor       string                        `json:"icon_color,omitempty"`
	IconBackground  string                        `json:"icon_background,omitempty"`
	ReplaceMCPs     *bool                         `json:"replace_mcps,omitempty"`
}

// AgentList is the paginated envelope for agent listings.
type AgentList struct {
	Agents     []Agent    `json:"agents"`
	Pagination Pagination `json:"pagination"`
}

// AgentTool is one entry in an agent's effective tool listing.
type AgentTool struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Server      string `json:"server,omitempty"` // set for MCP tools
	Description string `json:"description,omitempty"`
}

// AgentTools groups an agent's tools by origin.
type AgentTools struct {
	AgentPressTools []AgentTool `json:"agentpress_tools"`
	MCPTools        []AgentTool `json:"mcp_tools"`
}

// BuilderChatMessage is one message of an agent-builder session.
type BuilderChatMessage struct {
	MessageID    string `json:"message_id"`
	ThreadID     string `json:"thread_id"`
	Type         string `json:"type"`
	IsLLMMessage bool   `json:"is_llm_message"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
}

// BuilderChatHistory holds the agent-builder conversation for an agent.
type BuilderChatHistory struct {
	Messages []BuilderChatMessage `json:"messages"`
	ThreadID string               `json:"thread_id,omitempty"`
}

// IconGenerationRequest asks the service to pick an icon for an agent.
type IconGenerationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// IconGeneration is the generated icon selection.
type IconGeneration struct {
	IconName       string `json:"icon_name"`
	IconColor      string `json:"icon_color"`
	IconBackground string `json:"icon_background"`
}

// AgentExport is a portable agent configuration.
type AgentExport struct {
	Name            string           `json:"name"`
	SystemPrompt    string           `json:"system_prompt"`
	AgentPressTools map[string]any   `json:"agentpress_tools"`
	ConfiguredMCPs  []map[string]any `json:"configured_mcps"`
	CustomMCPs      []map[string]any `json:"custom_mcps"`
	Description     string           `json:"description,omitempty"`
	ProfileImageURL string           `json:"profile_image_url,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
	ExportVersion   string           `json:"export_version"`
	ExportedAt      string           `json:"exported_at"`
	ExportedBy      string           `json:"exported_by,omitempty"`
}

// ImportAnalysisRequest submits exported agent JSON for analysis.
type ImportAnalysisRequest struct {
	JSONData map[string]any `json:"json_data"`
}

// ImportAnalysis reports the credentials and configs an import would need.
type ImportAnalysis struct {
	RequiresSetup             bool             `json:"requires_setup"`
	MissingRegularCredentials []map[string]any `json:"missing_regular_credentials"`
	MissingCustomConfigs      []map[string]any `json:"missing_custom_configs"`
	AgentInfo                 map[string]any   `json:"agent_info"`
}

// ImportRequest imports an agent from exported JSON.
type ImportRequest struct {
	JSONData           map[string]any            `json:"json_data"`
	InstanceName       string                    `json:"instance_name,omitempty"`
	CustomSystemPrompt string                    `json:"custom_system_prompt,omitempty"`
	ProfileMappings    map[string]string         `json:"profile_mappings,omitempty"`
	CustomMCPConfigs   map[string]map[string]any `json:"custom_mcp_configs,omitempty"`
}

// ImportResult is the outcome of an agent import.
type ImportResult struct {
	Status                    string           `json:"status"`
	InstanceID                string           `json:"instance_id,omitempty"`
	Name                      string           `json:"name,omitempty"`
	MissingRegularCredentials []map[string]any `json:"missing_regular_credentials,omitempty"`
	MissingCustomConfigs      []map[string]any `json:"missing_custom_configs,omitempty"`
	AgentInfo                 map[string]any   `json:"agent_info,omitempty"`
}
