// ABOUTME: MCP resource implementations for the fittrack tracker.
// ABOUTME: Provides fittrack://recent and fittrack://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://recent",
		Name:        "Recent Activity",
		Description: "Last 20 workouts, weigh-ins, and meals",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://summary",
		Name:        "Today's Summary",
		Description: "Today's nutrition and activity totals against goals",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	items, err := s.tracker.RecentActivity(ctx, s.userID, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fittrack://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary, err := s.tracker.TodaySummary(ctx, s.userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fittrack://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
