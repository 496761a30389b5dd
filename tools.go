// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

import "fmt"

// AgentPressTool identifies one of the built-in sandbox tools an agent can
// be granted.
type AgentPressTool string

const (
	ToolShell         AgentPressTool = "sb_shell_tool"
	ToolFiles         AgentPressTool = "sb_files_tool"
	ToolBrowser       AgentPressTool = "sb_browser_tool"
	ToolDeploy        AgentPressTool = "sb_deploy_tool"
	ToolExpose        AgentPressTool = "sb_expose_tool"
	ToolWebSearch     AgentPressTool = "web_search_tool"
	ToolVision        AgentPressTool = "sb_vision_tool"
	ToolDataProviders AgentPressTool = "data_providers_tool"
)

var agentPressToolDescriptions = map[AgentPressTool]string{
	ToolShell:         "Execute shell commands in the agent sandbox",
	ToolFiles:         "Create, read, and edit files in the agent sandbox",
	ToolBrowser:       "Browse and interact with web pages",
	ToolDeploy:        "Deploy applications from the agent sandbox",
	ToolExpose:        "Expose sandbox ports to the public internet",
	ToolWebSearch:     "Search the web and fetch results",
	ToolVision:        "Inspect and describe images",
	ToolDataProviders: "Query connected structured data providers",
}

// Description returns the human-readable description of the tool, or the
// tool id itself for unknown tools.
func (t AgentPressTool) Description() string {
	if d, ok := agentPressToolDescriptions[t]; ok {
		return d
	}
	return string(t)
}

// AllAgentPressTools returns the built-in tool catalog.
func AllAgentPressTools() []AgentPressTool {
	return []AgentPressTool{
		ToolShell, ToolFiles, ToolBrowser, ToolDeploy,
		ToolExpose, ToolWebSearch, ToolVision, ToolDataProviders,
	}
}

// MCPTools describes an external MCP server and the tools to enable on it.
type MCPTools struct {
	Name         string
	Type         string // "sse" or "http"
	URL          string
	EnabledTools []string
}

// ToolSelection is the processed tool configuration attached to an agent:
// built-in tool enablement plus custom MCP server bindings.
type ToolSelection struct {
	AgentPressTools map[AgentPressTool]ToolConfig
	CustomMCPs      []CustomMCP
}

// ProcessTools turns a mixed tool list into the request shape the API
// expects. Built-in tools become per-tool enablement entries; MCP servers
// become custom MCP bindings. When allowed is non-nil only the named tools
// stay enabled.
func ProcessTools(builtin []AgentPressTool, mcps []MCPTools, allowed []string) (*ToolSelection, error) {
	allowSet := toolAllowSet(allowed)

	sel := &ToolSelection{
		AgentPressTools: make(map[AgentPressTool]ToolConfig, len(builtin)),
	}

	for _, tool := range builtin {
		if tool == "" {
			return nil, fmt.Errorf("empty agentpress tool id")
		}
		enabled := allowSet == nil || allowSet[string(tool)]
		sel.AgentPressTools[tool] = ToolConfig{
			Enabled:     enabled,
			Description: tool.Description(),
		}
	}

	for _, mcp := range mcps {
		if mcp.URL == "" {
			return nil, fmt.Errorf("MCP server %q has no URL", mcp.Name)
		}
		enabledTools := mcp.EnabledTools
		if allowSet != nil {
			enabledTools = nil
			for _, name := range mcp.EnabledTools {
				if allowSet[name] {
					enabledTools = append(enabledTools, name)
				}
			}
		}
		sel.CustomMCPs = append(sel.CustomMCPs, CustomMCP{
			Name:         mcp.Name,
			Type:         mcp.Type,
			Config:       MCPConfig{URL: mcp.URL},
			EnabledTools: enabledTools,
		})
	}

	return sel, nil
}

// FilterTools disables, in place, every tool not named in allowed. It is
// used when updating an agent whose configuration was fetched from the API.
func FilterTools(agentpress map[AgentPressTool]ToolConfig, customMCPs []CustomMCP, allowed []string) {
	allowSet := toolAllowSet(allowed)
	if allowSet == nil {
		return
	}

	for tool, cfg := range agentpress {
		if !allowSet[string(tool)] {
			cfg.Enabled = false
			agentpress[tool] = cfg
		}
	}

	for i := range customMCPs {
		var kept []string
		for _, name := range customMCPs[i].EnabledTools {
			if allowSet[name] {
				kept = append(kept, name)
			}
		}
		customMCPs[i].EnabledTools = kept
	}
}

func toolAllowSet(allowed []string) map[string]bool {
	if allowed == nil {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		set[name] = true
	}
	return set
}
