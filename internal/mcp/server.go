package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/gigofit/internal/analytics"
	"github.com/meltforce/gigofit/internal/gamification"
	"github.com/meltforce/gigofit/internal/storage"
)

// New creates an MCP server with all tools and resources registered. The
// store opens on first use: clients launch the binary at their own startup,
// and a transient open failure is retried on the next call instead of
// killing the whole session.
func New(store *storage.Lazy, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GigoFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GigoFit workout tracking server. Query workout history, sets, personal records, volume trends, coaching feedback, and Ascent gamification stats. All data is local to this machine."),
	)

	h := &handlers{store: store, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetSessionSummary, Handler: h.getSessionSummary},
		server.ServerTool{Tool: toolGetSessionSets, Handler: h.getSessionSets},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetSessionPRs, Handler: h.getSessionPRs},
		server.ServerTool{Tool: toolGetVolumeTrend, Handler: h.getVolumeTrend},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
		server.ServerTool{Tool: toolGetMonthlyPRs, Handler: h.getMonthlyPRs},
		server.ServerTool{Tool: toolGetCoaching, Handler: h.getCoaching},
		server.ServerTool{Tool: toolGetAscentStats, Handler: h.getAscentStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resAscent, Handler: h.ascentResource},
		server.ServerResource{Resource: resRecentHistory, Handler: h.recentHistory},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store *storage.Lazy
	log   *slog.Logger
}

// data resolves the shared store and wraps it in the derived engines.
func (h *handlers) data(ctx context.Context) (*storage.DB, *analytics.Engine, *gamification.Engine, error) {
	ds, err := h.store.Get(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return ds, analytics.New(ds), gamification.New(ds), nil
}
