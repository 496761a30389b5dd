// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

// VersionCreateRequest creates a new agent version.
type VersionCreateRequest struct {
	SystemPrompt    string                        `json:"system_prompt"`
	Model           string                        `json:"model,omitempty"`
	ConfiguredMCPs  []CustomMCP                   `json:"configured_mcps,omitempty"`
	CustomMCPs      []CustomMCP                   `json:"custom_mcps,omitempty"`
	AgentPressTools map[AgentPressTool]ToolConfig `json:"agentpress_tools,omitempty"`
	VersionName     string                        `json:"version_name,omitempty"`
	Description     string                        `json:"description,omitempty"`
}

// VersionDetailsUpdateRequest renames a version or updates its change notes.
type VersionDetailsUpdateRequest struct {
	VersionName       string `json:"version_name,omitempty"`
	ChangeDescription string `json:"change_description,omitempty"`
}

// VersionComparison is the diff between two agent versions.
type VersionComparison struct {
	Version1    AgentVersion     `json:"version1"`
	Version2    AgentVersion     `json:"version2"`
	Differences []map[string]any `json:"differences"`
}
