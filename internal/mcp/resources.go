// ABOUTME: MCP resource implementations for intervals data.
// ABOUTME: Provides intervals://workout, intervals://settings, and intervals://activity resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/intervals/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// intervals://workout - current workout with progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "intervals://workout",
		Name:        "Current Workout",
		Description: "The current workout tasks with per-task progress",
		MIMEType:    "application/json",
	}, s.handleWorkoutResource)

	// intervals://settings - full settings including the exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "intervals://settings",
		Name:        "Workout Settings",
		Description: "Timing settings and the exercise group catalog",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	// intervals://activity - last finish time per exercise
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "intervals://activity",
		Name:        "Activity Log",
		Description: "When each exercise was last finished and which groups are resting",
		MIMEType:    "application/json",
	}, s.handleActivityResource)
}

// Resource handlers

func (s *Server) handleWorkoutResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	w, err := s.repo.GetWorkout()
	if err != nil {
		return nil, fmt.Errorf("failed to load workout: %w", err)
	}

	result := map[string]interface{}{
		"workout":   w,
		"total":     workout.FormatClock(w.TotalTime()),
		"remaining": workout.FormatClock(w.RemainingTime()),
		"begun":     w.HasBegun(),
		"ended":     w.HasEnded(),
	}
	return jsonResource("intervals://workout", result)
}

func (s *Server) handleSettingsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	result := map[string]interface{}{
		"settings": settings,
		"warnings": settings.Validate(),
	}
	return jsonResource("intervals://settings", result)
}

func (s *Server) handleActivityResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	activity, err := s.repo.GetActivityLog()
	if err != nil {
		return nil, fmt.Errorf("failed to load activity log: %w", err)
	}

	now := s.now()
	eligible := []string{}
	for _, g := range workout.EligibleGroups(settings, activity, now) {
		eligible = append(eligible, g.Name)
	}

	result := map[string]interface{}{
		"exercises":       sortedHistory(activity),
		"eligible_groups": eligible,
	}
	return jsonResource("intervals://activity", result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
