package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gigofit/internal/analytics"
	"github.com/meltforce/gigofit/internal/gamification"
	"github.com/meltforce/gigofit/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	stats  *analytics.Engine
	ascent *gamification.Engine
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, statsEngine *analytics.Engine, ascentEngine *gamification.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		stats:  statsEngine,
		ascent: ascentEngine,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write endpoints (API key required)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/sessions", s.handleStartSession)
			r.Post("/sessions/{id}/end", s.handleEndSession)
			r.Post("/sessions/{id}/timer", s.handleUpdateTimer)
			r.Post("/sessions/{id}/rename", s.handleRenameSession)
			r.Delete("/sessions/{id}", s.handleDeleteSession)
			r.Post("/sets", s.handleAddSet)
			r.Put("/sets/{id}", s.handleUpdateSet)
			r.Delete("/sets/{id}", s.handleDeleteSet)
		})

		// Read endpoints (no auth, tsnet handles access)
		r.Get("/sessions/active", s.handleActiveSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/sessions/{id}/sets", s.handleSessionSets)
		r.Get("/sessions/{id}/summary", s.handleSessionSummary)
		r.Get("/sessions/{id}/volume", s.handleSessionVolume)
		r.Get("/sessions/{id}/prs", s.handleSessionPRs)
		r.Get("/history", s.handleHistory)
		r.Get("/history/{year}/{month}", s.handleMonthHistory)
		r.Get("/volume/total", s.handleTotalVolume)
		r.Get("/exercises", s.handleExercises)
		r.Get("/exercises/{id}/ghost", s.handleGhostValues)
		r.Get("/vibes", s.handleVibeLevels)
		r.Get("/analytics/weekly-volume", s.handleWeeklyVolume)
		r.Get("/analytics/monthly-volume", s.handleMonthlyVolume)
		r.Get("/analytics/exercises/{id}/weekly-max", s.handleWeeklyMax)
		r.Get("/analytics/exercises/{id}/weekly-1rm", s.handleWeekly1RM)
		r.Get("/analytics/monthly-prs", s.handleMonthlyPRs)
		r.Get("/analytics/records", s.handlePersonalRecords)
		r.Get("/analytics/coaching", s.handleCoaching)
		r.Get("/ascent", s.handleAllStats)
	})
}
