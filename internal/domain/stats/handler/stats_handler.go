package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/samihq/weekly-reports/internal/domain/stats"
	"github.com/samihq/weekly-reports/pkg/week"
)

// StatsHandler exposes the aggregate views over REST
type StatsHandler struct {
	svc *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Register mounts the stats routes
func (h *StatsHandler) Register(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Get("/overall", h.overall)
		r.Get("/team/{team}", h.team)
		r.Get("/user/{userId}", h.user)
		r.Get("/period", h.period)
	})
}

// GET /stats/team/{team}?week=9&year=2026 (defaults to the current week)
func (h *StatsHandler) team(w http.ResponseWriter, r *http.Request) {
	weekNumber, year, ok := weekYearFromQuery(w, r)
	if !ok {
		return
	}

	out, err := h.svc.TeamWeek(r.Context(), chi.URLParam(r, "team"), weekNumber, year)
	if err != nil {
		http.Error(w, "failed to compute team stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /stats/user/{userId}
func (h *StatsHandler) user(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	out, err := h.svc.User(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to compute user stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /stats/period?year=2026&from=6&to=9
func (h *StatsHandler) period(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	currentWeek, currentYear := week.At(time.Now())
	year := currentYear
	fromWeek := 1
	toWeek := currentWeek

	var err error
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("from"); v != "" {
		if fromWeek, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid from week", http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if toWeek, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid to week", http.StatusBadRequest)
			return
		}
	}
	if !week.Valid(fromWeek) || !week.Valid(toWeek) || fromWeek > toWeek {
		http.Error(w, "invalid week range", http.StatusBadRequest)
		return
	}

	out, err := h.svc.Period(r.Context(), year, fromWeek, toWeek)
	if err != nil {
		http.Error(w, "failed to compute period stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /stats/overall
func (h *StatsHandler) overall(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Overall(r.Context())
	if err != nil {
		http.Error(w, "failed to compute overall stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func weekYearFromQuery(w http.ResponseWriter, r *http.Request) (weekNumber, year int, ok bool) {
	q := r.URL.Query()
	weekNumber, year = week.At(time.Now())

	var err error
	if v := q.Get("week"); v != "" {
		if weekNumber, err = strconv.Atoi(v); err != nil || !week.Valid(weekNumber) {
			http.Error(w, "invalid week", http.StatusBadRequest)
			return 0, 0, false
		}
	}
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return 0, 0, false
		}
	}
	return weekNumber, year, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
