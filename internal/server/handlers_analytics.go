package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/meltforce/gigofit/internal/models"
)

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	points, err := s.stats.WeeklyVolume(r.Context(), queryInt(r, "weeks", 8))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleMonthlyVolume(w http.ResponseWriter, r *http.Request) {
	points, err := s.stats.MonthlyVolume(r.Context(), queryInt(r, "months", 12))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleWeeklyMax(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}
	points, err := s.stats.ExerciseWeeklyMax(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleWeekly1RM(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}
	points, err := s.stats.ExerciseWeekly1RM(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleSessionPRs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	events, err := s.stats.DetectNewPR(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleMonthlyPRs(w http.ResponseWriter, r *http.Request) {
	reference := time.Now().UnixMilli()
	if v := r.URL.Query().Get("reference"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid reference timestamp")
			return
		}
		reference = parsed
	}
	events, err := s.stats.MonthlyPRSummary(r.Context(), reference)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.stats.PersonalRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCoaching(w http.ResponseWriter, r *http.Request) {
	volume, err := strconv.ParseFloat(r.URL.Query().Get("volume"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "volume parameter required")
		return
	}
	vibe := models.VibeNormal
	if v := r.URL.Query().Get("vibe"); v != "" {
		parsed, err := models.ParseVibe(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		vibe = parsed
	}
	comparison, err := s.stats.CoachingComparison(r.Context(), volume, vibe)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ascent.GetAllStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
