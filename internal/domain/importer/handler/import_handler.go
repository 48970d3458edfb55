package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samihq/weekly-reports/internal/domain/importer"
	"github.com/samihq/weekly-reports/internal/domain/importer/pdftext"
	"github.com/samihq/weekly-reports/internal/domain/reports/repository"
	"github.com/samihq/weekly-reports/internal/domain/reports/service"
	"github.com/samihq/weekly-reports/pkg/storage"
)

// ImportHandler accepts PDF report uploads
type ImportHandler struct {
	importer *importer.Service
	reports  *service.Service
	archive  storage.Storage
	logger   *slog.Logger
}

// NewImportHandler creates a new import handler. archive may be nil when
// upload retention is disabled.
func NewImportHandler(imp *importer.Service, reports *service.Service, archive storage.Storage, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{importer: imp, reports: reports, archive: archive, logger: logger}
}

// Register mounts the import routes
func (h *ImportHandler) Register(r chi.Router) {
	r.Post("/import/pdf", h.importPDF)
	r.Get("/import/uploads", h.listUploads)
}

// POST /import/pdf?userId=7&submit=true with multipart field "file".
// Without submit the draft is returned for review; with submit=true the
// report is filed immediately and the original PDF is archived.
func (h *ImportHandler) importPDF(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "invalid userId", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, pdftext.MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file upload", http.StatusBadRequest)
		return
	}

	draft, err := h.importer.FromPDF(userID, bytes.NewReader(raw))
	if err != nil {
		if errors.Is(err, pdftext.ErrUnreadable) || errors.Is(err, importer.ErrNoReportContent) {
			http.Error(w, importer.Describe(err), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "failed to import report", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("submit") != "true" {
		writeJSON(w, http.StatusOK, draft)
		return
	}

	report, err := h.reports.Create(r.Context(), draft.Input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "report already exists for this week", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.archive != nil {
		filename := "report.pdf"
		if header != nil && header.Filename != "" {
			filename = header.Filename
		}
		_, err := h.archive.Upload(r.Context(), userID, filename, "application/pdf",
			report.WeekNumber, report.Year, bytes.NewReader(raw))
		if err != nil {
			h.logger.Warn("failed to archive report original",
				slog.Int64("userId", userID), slog.Any("error", err))
		}
	}

	writeJSON(w, http.StatusCreated, report)
}

// GET /import/uploads?userId=7 lists a user's archived originals.
func (h *ImportHandler) listUploads(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		http.Error(w, "upload retention is disabled", http.StatusNotFound)
		return
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "invalid userId", http.StatusBadRequest)
		return
	}

	files, err := h.archive.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list uploads", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": files, "count": len(files)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
