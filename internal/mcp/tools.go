package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gigofit/internal/format"
	"github.com/meltforce/gigofit/internal/models"
	"github.com/meltforce/gigofit/internal/storage"
)

// parseFlexTime accepts RFC 3339, YYYY-MM-DD, or YYYY-MM.
func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("List completed workout sessions, newest first. Each entry includes the session name, vibe, total volume, set count, and duration."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 20.")),
)

var toolGetSessionSummary = mcp.NewTool("get_session_summary",
	mcp.WithDescription("Detailed summary for one workout session: totals plus a per-exercise breakdown in the order the exercises were performed."),
	mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Session ID")),
)

var toolGetSessionSets = mcp.NewTool("get_session_sets",
	mcp.WithDescription("All sets logged in a session with exercise names, weight, and reps. Newest first."),
	mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Session ID")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("All-time best weight per exercise across completed sessions, grouped by muscle group."),
)

var toolGetSessionPRs = mcp.NewTool("get_session_prs",
	mcp.WithDescription("Personal records set within a specific session (max weight, single-set volume, estimated one-rep max), compared against all history before it."),
	mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Session ID")),
)

var toolGetVolumeTrend = mcp.NewTool("get_volume_trend",
	mcp.WithDescription("Total training volume bucketed per week or per month, oldest bucket first."),
	mcp.WithString("period", mcp.Description("Bucket size. Defaults to 'week'."), mcp.Enum("week", "month")),
	mcp.WithNumber("limit", mcp.Description("Number of most recent buckets. Defaults to 8 for weeks, 12 for months.")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Weekly progression for one exercise: heaviest weight lifted or best estimated one-rep max per week."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID (see the exercise catalog resource)")),
	mcp.WithString("metric", mcp.Description("Progression metric. Defaults to 'max_weight'."), mcp.Enum("max_weight", "one_rm")),
)

var toolGetMonthlyPRs = mcp.NewTool("get_monthly_prs",
	mcp.WithDescription("Personal records set during a calendar month, grouped by session."),
	mcp.WithString("month", mcp.Description("Month to inspect (YYYY-MM or a date inside it). Defaults to the current month.")),
)

var toolGetCoaching = mcp.NewTool("get_coaching",
	mcp.WithDescription("Coaching feedback for a session: how its volume compares to the previous workout, with an affirmation message."),
	mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Session ID")),
)

var toolGetAscentStats = mcp.NewTool("get_ascent_stats",
	mcp.WithDescription("Ascent gamification stats: strength, agility, and endurance values with tier labels, plus focus and fury counters."),
)

// historyEntry decorates a completed session with display labels so the
// client does not have to decode vibe codes or millisecond timestamps.
type historyEntry struct {
	models.HistorySession
	VibeLabel string `json:"vibe_label"`
	Duration  string `json:"duration"`
	DayPart   string `json:"day_part"`
}

func labelHistory(sessions []models.HistorySession) []historyEntry {
	entries := make([]historyEntry, len(sessions))
	for i, s := range sessions {
		entries[i] = historyEntry{
			HistorySession: s,
			VibeLabel:      format.FormatVibeLabel(s.Vibe),
			Duration:       format.FormatDuration(int64(s.DurationMinutes) * 60),
			DayPart:        format.DayPartLabel(s.StartTime),
		}
	}
	return entries
}

// trendPoint pairs a raw volume bucket with its human-readable label.
type trendPoint struct {
	storage.VolumePoint
	Label string `json:"label"`
}

func labelTrend(points []storage.VolumePoint, label func(string) string) []trendPoint {
	out := make([]trendPoint, len(points))
	for i, p := range points {
		out[i] = trendPoint{VolumePoint: p, Label: label(p.Bucket)}
	}
	return out
}

// --- Tool handlers ---

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, _, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	limit := int(req.GetFloat("limit", 20))
	sessions, err := ds.GetSessionHistory(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	result, err := mcp.NewToolResultJSON(labelHistory(sessions))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	ds, _, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	summary, err := ds.GetSessionSummary(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_session_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if summary == nil {
		return mcp.NewToolResultError("session not found"), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	ds, _, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	sets, err := ds.GetSetsForSession(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_session_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, stats, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	records, err := stats.PersonalRecords(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionPRs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	_, stats, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	events, err := stats.DetectNewPR(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_session_prs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(events)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, stats, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	period := req.GetString("period", "week")
	var points []storage.VolumePoint
	label := format.FormatWeekLabel
	switch period {
	case "month":
		points, err = stats.MonthlyVolume(ctx, int(req.GetFloat("limit", 12)))
		label = format.FormatMonthLabel
	default:
		points, err = stats.WeeklyVolume(ctx, int(req.GetFloat("limit", 8)))
	}
	if err != nil {
		h.log.Error("mcp get_volume_trend", "period", period, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(labelTrend(points, label))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	_, stats, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	var points any
	switch req.GetString("metric", "max_weight") {
	case "one_rm":
		points, err = stats.ExerciseWeekly1RM(ctx, int64(id))
	default:
		points, err = stats.ExerciseWeeklyMax(ctx, int64(id))
	}
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMonthlyPRs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reference := time.Now()
	if s := req.GetString("month", ""); s != "" {
		t, err := parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid month format: " + err.Error()), nil
		}
		reference = t
	}

	_, stats, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	events, err := stats.MonthlyPRSummary(ctx, reference.UnixMilli())
	if err != nil {
		h.log.Error("mcp get_monthly_prs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(events)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCoaching(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	ds, stats, _, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	session, err := ds.GetSessionByID(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_coaching", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if session == nil {
		return mcp.NewToolResultError("session not found"), nil
	}

	volume, err := ds.GetSessionVolume(ctx, session.ID)
	if err != nil {
		h.log.Error("mcp get_coaching", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	comparison, err := stats.CoachingComparison(ctx, volume, session.Vibe)
	if err != nil {
		h.log.Error("mcp get_coaching", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(comparison)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getAscentStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, _, ascent, err := h.data(ctx)
	if err != nil {
		return mcp.NewToolResultError("database unavailable: " + err.Error()), nil
	}

	stats, err := ascent.GetAllStats(ctx)
	if err != nil {
		h.log.Error("mcp get_ascent_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
