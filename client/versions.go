// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/neurocluster/neurocluster-go"
)

// VersionsService manages the version history of agents.
type VersionsService struct {
	client *Client
}

// List returns all versions of an agent.
func (s *VersionsService) List(ctx context.Context, agentID string) ([]neurocluster.AgentVersion, error) {
	var out []neurocluster.AgentVersion
	if err := s.client.get(ctx, "/agents/"+agentID+"/versions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single version.
func (s *VersionsService) Get(ctx context.Context, agentID, versionID string) (*neurocluster.AgentVersion, error) {
	var out neurocluster.AgentVersion
	if err := s.client.get(ctx, "/agents/"+agentID+"/versions/"+versionID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a new version of an agent.
func (s *VersionsService) Create(ctx context.Context, agentID string, req *neurocluster.VersionCreateRequest) (*neurocluster.AgentVersion, error) {
	var out neurocluster.AgentVersion
	if err := s.client.post(ctx, "/agents/"+agentID+"/versions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activate makes the given version the agent's active configuration.
func (s *VersionsService) Activate(ctx context.Context, agentID, versionID string) error {
	return s.client.put(ctx, "/agents/"+agentID+"/versions/"+versionID+"/activate", nil, nil)
}

// Rollback creates a new version from an older one and activates it.
func (s *VersionsService) Rollback(ctx context.Context, agentID, versionID string) (*neurocluster.AgentVersion, error) {
	var out neurocluster.AgentVersion
	if err := s.client.post(ctx, "/agents/"+agentID+"/versions/"+versionID+"/rollback", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare diffs two versions of an agent.
func (s *VersionsService) Compare(ctx context.Context, agentID, versionID1, versionID2 string) (*neurocluster.VersionComparison, error) {
	var out neurocluster.VersionComparison
	if err := s.client.get(ctx, "/agents/"+agentID+"/versions/"+versionID1+"/compare/"+versionID2, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDetails renames a version or updates its change description.
func (s *VersionsService) UpdateDetails(ctx context.Context, agentID, versionID string, req *neurocluster.VersionDetailsUpdateRequest) (*neurocluster.AgentVersion, error) {
	var out neurocluster.AgentVersion
	if err := s.client.put(ctx, "/agents/"+agentID+"/versions/"+versionID+"/details", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
