package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samihq/weekly-reports/internal/domain/settings"
)

// SettingsHandler exposes the runtime settings over REST
type SettingsHandler struct {
	repo *settings.Repository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(repo *settings.Repository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// Register mounts the settings routes
func (h *SettingsHandler) Register(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{key}", h.get)
		r.Put("/{key}", h.set)
	})
}

// GET /settings
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.All(r.Context())
	if err != nil {
		http.Error(w, "failed to list settings", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []settings.Setting{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /settings/{key}
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.repo.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			http.Error(w, "setting not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get setting", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings.Setting{Key: key, Value: value})
}

// PUT /settings/{key}
func (h *SettingsHandler) set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.Set(r.Context(), key, body.Value); err != nil {
		http.Error(w, "failed to update setting", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings.Setting{Key: key, Value: body.Value})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
