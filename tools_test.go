// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package neurocluster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcessTools(t *testing.T) {
	sel, err := ProcessTools(
		[]AgentPressTool{ToolShell, ToolWebSearch},
		[]MCPTools{{
			Name:         "github",
			Type:         "sse",
			URL:          "https://mcp.example.com/github",
			EnabledTools: []string{"create_issue", "list_repos"},
		}},
		nil,
	)
	if err != nil {
		t.Fatalf("ProcessTools: %v", err)
	}

	for _, tool := range []AgentPressTool{ToolShell, ToolWebSearch} {
		cfg, ok := sel.AgentPressTools[tool]
		if !ok || !cfg.Enabled {
			t.Errorf("tool %s = %+v, want enabled", tool, cfg)
		}
		if cfg.Description == "" {
			t.Errorf("tool %s has no description", tool)
		}
	}

	wantMCPs := []CustomMCP{{
		Name:         "github",
		Type:         "sse",
		Config:       MCPConfig{URL: "https://mcp.example.com/github"},
		EnabledTools: []string{"create_issue", "list_repos"},
	}}
	if diff := cmp.Diff(wantMCPs, sel.CustomMCPs); diff != "" {
		t.Errorf("CustomMCPs mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessToolsAllowList(t *testing.T) {
	sel, err := ProcessTools(
		[]AgentPressTool{ToolShell, ToolWebSearch},
		[]MCPTools{{
			Name:         "github",
			Type:         "http",
			URL:          "https://mcp.example.com/github",
			EnabledTools: []string{"create_issue", "list_repos"},
		}},
		[]string{string(ToolWebSearch), "create_issue"},
	)
	if err != nil {
		t.Fatalf("ProcessTools: %v", err)
	}

	if cfg := sel.AgentPressTools[ToolShell]; cfg.Enabled {
		t.Error("shell tool enabled, want disabled by allow list")
	}
	if cfg := sel.AgentPressTools[ToolWebSearch]; !cfg.Enabled {
		t.Error("web search tool disabled, want enabled")
	}
	if diff := cmp.Diff([]string{"create_issue"}, sel.CustomMCPs[0].EnabledTools); diff != "" {
		t.Errorf("MCP tools mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessToolsRejectsMissingURL(t *testing.T) {
	_, err := ProcessTools(nil, []MCPTools{{Name: "broken"}}, nil)
	if err == nil {
		t.Fatal("ProcessTools() error = nil, want missing-URL error")
	}
}

func TestFilterTools(t *testing.T) {
	agentpress := map[AgentPressTool]ToolConfig{
		ToolShell:     {Enabled: true},
		ToolWebSearch: {Enabled: true},
	}
	mcps := []CustomMCP{{
		Name:         "github",
		EnabledTools: []string{"create_issue", "list_repos"},
	}}

	FilterTools(agentpress, mcps, []string{string(ToolShell), "list_repos"})

	if !agentpress[ToolShell].Enabled {
		t.Error("shell tool disabled, want kept")
	}
	if agentpress[ToolWebSearch].Enabled {
		t.Error("web search tool enabled, want disabled")
	}
	if diff := cmp.Diff([]string{"list_repos"}, mcps[0].EnabledTools); diff != "" {
		t.Errorf("MCP tools mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterToolsNilAllowKeepsEverything(t *testing.T) {
	agentpress := map[AgentPressTool]ToolConfig{ToolShell: {Enabled: true}}
	FilterTools(agentpress, nil, nil)
	if !agentpress[ToolShell].Enabled {
		t.Error("shell tool disabled, want untouched with nil allow list")
	}
}
