package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gigofit/internal/models"
)

// --- Resource definitions ---

var resAscent = mcp.NewResource(
	"gigofit://ascent",
	"Ascent Stats",
	mcp.WithResourceDescription("Current Ascent gamification stats: strength, agility, endurance tiers plus focus and fury counters"),
	mcp.WithMIMEType("application/json"),
)

var resRecentHistory = mcp.NewResource(
	"gigofit://recent_history",
	"Recent Workouts",
	mcp.WithResourceDescription("The ten most recent completed workout sessions"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"gigofit://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercises with muscle group and category, plus the vibe scale with suggested set/rep multipliers"),
	mcp.WithMIMEType("application/json"),
)

// --- Resource handlers ---

func (h *handlers) ascentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	_, _, ascent, err := h.data(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := ascent.GetAllStats(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, stats)
}

func (h *handlers) recentHistory(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds, _, _, err := h.data(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := ds.GetSessionHistory(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 10 {
		sessions = sessions[:10]
	}
	return jsonResource(req.Params.URI, labelHistory(sessions))
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds, _, _, err := h.data(ctx)
	if err != nil {
		return nil, err
	}
	exercises, err := ds.GetAllExercises(ctx)
	if err != nil {
		return nil, err
	}
	catalog := struct {
		Exercises  []models.Exercise  `json:"exercises"`
		VibeLevels []models.VibeLevel `json:"vibe_levels"`
	}{Exercises: exercises, VibeLevels: models.VibeLevels()}
	return jsonResource(req.Params.URI, catalog)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
