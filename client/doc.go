// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package client implements the NeuroCluster API client.
//
// A Client is built with functional options and exposes one service per API
// surface: Agents, Threads, Versions, and the lazily constructed Pipedream
// and Composio integration services. On top of the services sit small
// handles (Agent, Thread, Run) that bundle the common flows.
//
//	c, err := client.New(
//		client.WithAPIKey(os.Getenv("NEUROCLUSTER_API_KEY")),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	thread, err := c.NewThread(ctx, "support")
//	if err != nil {
//		log.Fatal(err)
//	}
//	run, err := c.Agent(agentID).Run(ctx, thread, "Summarize my open tickets")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rs, err := run.Stream(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rs.Close()
//	for ev, err := range rs.All(ctx) {
//		...
//	}
//
// Transient failures (429 and 5xx responses, transport errors) are retried
// with exponential backoff; non-2xx responses surface as
// *neurocluster.APIError values.
package client
