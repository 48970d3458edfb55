package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// webhookPayload is the slice of a Trello action event we care about.
type webhookPayload struct {
	Action struct {
		Type string `json:"type"`
		Data struct {
			Card struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"card"`
			ListAfter struct {
				Name string `json:"name"`
			} `json:"listAfter"`
		} `json:"data"`
	} `json:"action"`
}

// WebhookHandler receives board events from Trello
type WebhookHandler struct {
	logger *slog.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{logger: logger}
}

// Register mounts the webhook routes. Trello verifies the callback URL
// with a HEAD request before it starts delivering events.
func (h *WebhookHandler) Register(r chi.Router) {
	r.Head("/webhook/trello", h.verify)
	r.Post("/webhook/trello", h.receive)
}

func (h *WebhookHandler) verify(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// POST /webhook/trello
func (h *WebhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if payload.Action.Type == "updateCard" && payload.Action.Data.ListAfter.Name != "" {
		h.logger.Info("trello card moved",
			slog.String("card_id", payload.Action.Data.Card.ID),
			slog.String("list", payload.Action.Data.ListAfter.Name))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
