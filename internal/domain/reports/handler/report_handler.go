package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samihq/weekly-reports/internal/domain/reports"
	"github.com/samihq/weekly-reports/internal/domain/reports/repository"
	"github.com/samihq/weekly-reports/internal/domain/reports/service"
)

// ReportHandler exposes report submission, listing and export over REST
type ReportHandler struct {
	svc *service.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc *service.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Register mounts the report routes
func (h *ReportHandler) Register(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/export", h.export)
		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.delete)
		r.Get("/user/{userId}/week/{week}/{year}", h.getByUserWeek)
	})
}

// POST /reports
func (h *ReportHandler) create(w http.ResponseWriter, r *http.Request) {
	var input reports.CreateReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.svc.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "report already exists for this week", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// GET /reports?week=9&year=2026&team=Core&userId=7&limit=50&offset=0
func (h *ReportHandler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /reports/{id}
func (h *ReportHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	report, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GET /reports/user/{userId}/week/{week}/{year}
func (h *ReportHandler) getByUserWeek(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	weekNumber, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		http.Error(w, "invalid week number", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	report, err := h.svc.GetByUserWeek(r.Context(), userID, weekNumber, year)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DELETE /reports/{id}
func (h *ReportHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete report", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /reports/export?format=csv&week=9&year=2026
func (h *ReportHandler) export(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var (
		out         []byte
		contentType string
		ext         string
	)
	switch format {
	case "csv":
		out, err = h.svc.ExportCSV(r.Context(), filter)
		contentType = "text/csv"
		ext = ".csv"
	case "xlsx":
		out, err = h.svc.ExportXLSX(r.Context(), filter)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = ".xlsx"
	default:
		http.Error(w, "unsupported export format", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to export reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename(filter, ext)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func filterFromQuery(r *http.Request) (reports.Filter, error) {
	var filter reports.Filter
	q := r.URL.Query()

	filter.Team = q.Get("team")
	if v := q.Get("userId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid userId")
		}
		filter.UserID = &id
	}
	if v := q.Get("week"); v != "" {
		week, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid week")
		}
		filter.WeekNumber = &week
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid year")
		}
		filter.Year = &year
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = offset
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
