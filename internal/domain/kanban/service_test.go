package kanban

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samihq/weekly-reports/internal/domain/reports"
)

type fakeRecorder struct {
	reportID int64
	cardID   string
	cardURL  string
}

func (f *fakeRecorder) AttachTrelloCard(ctx context.Context, reportID int64, cardID, cardURL string) error {
	f.reportID = reportID
	f.cardID = cardID
	f.cardURL = cardURL
	return nil
}

// fakeBoard answers enough of the Trello API for the sync flow.
type fakeBoard struct {
	mux        *http.ServeMux
	cards      []map[string]any
	checklists map[string][]string
}

func newFakeBoard(t *testing.T) (*fakeBoard, *httptest.Server) {
	t.Helper()
	b := &fakeBoard{mux: http.NewServeMux(), checklists: map[string][]string{}}

	b.mux.HandleFunc("GET /boards/board-short", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]string{"id": "board-1", "name": "Reports"})
	})
	b.mux.HandleFunc("GET /boards/board-1/lists", func(w http.ResponseWriter, r *http.Request) {
		// Only two lists pre-exist, the rest must be created.
		writeTestJSON(w, []map[string]string{
			{"id": "list-new", "name": ListNewReports},
			{"id": "list-review", "name": ListInReview},
		})
	})
	b.mux.HandleFunc("POST /lists", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]string{"id": "list-created"})
	})
	b.mux.HandleFunc("GET /boards/board-1/labels", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, []map[string]string{})
	})
	b.mux.HandleFunc("POST /labels", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeTestJSON(w, map[string]string{"id": "label:" + body["name"].(string)})
	})
	b.mux.HandleFunc("POST /cards", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.cards = append(b.cards, body)
		writeTestJSON(w, map[string]string{
			"id":  "card-1",
			"url": "https://trello.com/c/card-1",
		})
	})
	b.mux.HandleFunc("POST /checklists", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeTestJSON(w, map[string]string{"id": "cl:" + body["name"].(string)})
	})
	b.mux.HandleFunc("POST /checklists/{id}/checkItems", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := r.PathValue("id")
		b.checklists[id] = append(b.checklists[id], body["name"].(string))
		writeTestJSON(w, map[string]string{"id": "item"})
	})

	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func writeTestJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testClient(srv *httptest.Server) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient("key", "token", "board-short", logger).WithBaseURL(srv.URL)
	c.backoff = time.Millisecond
	return c
}

func sampleReport() *reports.Report {
	concerns := "Багато контекст-свічингу"
	eta := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return &reports.Report{
		ID:                42,
		UserName:          "Коваль Андрій",
		WeekNumber:        9,
		Year:              2026,
		Workload:          5,
		TasksCompleted:    1,
		TasksNotCompleted: 1,
		CompletionRate:    50,
		HasBlockers:       true,
		Concerns:          &concerns,
		CompletedTasks: []reports.CompletedTask{
			{Title: "Розробка API", Project: "Billing", Hours: 12},
		},
		NotCompletedTasks: []reports.NotCompletedTask{
			{Title: "Міграція бази", Reason: "Бракує вікна", ETA: &eta, Blocker: "Немає доступу"},
		},
	}
}

func TestSyncReport(t *testing.T) {
	board, srv := newFakeBoard(t)
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(testClient(srv), recorder, logger)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }

	card, err := svc.SyncReport(context.Background(), sampleReport(), "Dev")
	require.NoError(t, err)
	assert.Equal(t, "card-1", card.ID)

	// Card reference recorded on the report.
	assert.Equal(t, int64(42), recorder.reportID)
	assert.Equal(t, "card-1", recorder.cardID)
	assert.Equal(t, "https://trello.com/c/card-1", recorder.cardURL)

	require.Len(t, board.cards, 1)
	created := board.cards[0]
	assert.Equal(t, "📋 Коваль Андрій - Week 09/2026", created["name"])

	// Critical workload plus blockers routes to follow-up, not new reports.
	assert.NotEqual(t, "list-new", created["idList"])

	labels := created["idLabels"].(string)
	assert.Contains(t, labels, "label:Load: Critical (5)")
	assert.Contains(t, labels, "label:Has Blockers")
	assert.Contains(t, labels, "label:Has Concerns")
	assert.Contains(t, labels, "label:Needs Review")
	assert.NotContains(t, labels, "All Tasks Done")

	desc := created["desc"].(string)
	assert.Contains(t, desc, "**👤 Співробітник:** Коваль Андрій")
	assert.Contains(t, desc, "- **Навантаження:** 🔴 Критичне (5/5)")
	assert.Contains(t, desc, "ETA: 15.03.2026")
	assert.Contains(t, desc, "⚠️ Блокер: Немає доступу")

	// Both checklists populated.
	assert.Equal(t, []string{"Розробка API (Billing) - 12h"}, board.checklists["cl:✅ Виконані задачі"])
	assert.Equal(t, []string{"Міграція бази - Бракує вікна"}, board.checklists["cl:❌ Невиконані задачі"])
}

func TestSyncReport_RoutesCalmWeekToNewReports(t *testing.T) {
	board, srv := newFakeBoard(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(testClient(srv), &fakeRecorder{}, logger)

	report := sampleReport()
	report.Workload = 2
	report.HasBlockers = false
	report.CompletionRate = 100
	report.Concerns = nil
	report.NotCompletedTasks = nil

	_, err := svc.SyncReport(context.Background(), report, "Dev")
	require.NoError(t, err)

	created := board.cards[0]
	assert.Equal(t, "list-new", created["idList"])
	labels := created["idLabels"].(string)
	assert.Contains(t, labels, "label:Load: Low (1-2)")
	assert.Contains(t, labels, "label:All Tasks Done")
	assert.NotContains(t, labels, "Has Blockers")
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeTestJSON(w, map[string]string{"id": "board-1", "name": "Reports"})
	}))
	defer srv.Close()

	client := testClient(srv)
	client.http.Timeout = time.Second

	var board struct {
		ID string `json:"id"`
	}
	err := client.do(context.Background(), http.MethodGet, "/boards/board-short", nil, &board)
	require.NoError(t, err)
	assert.Equal(t, "board-1", board.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_GivesUpOnPersistentErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := testClient(srv)

	err := client.do(context.Background(), http.MethodGet, "/boards/board-short", nil, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "gave up"))
}

func TestWorkloadLabelName(t *testing.T) {
	assert.Equal(t, "Load: Low (1-2)", workloadLabelName(1))
	assert.Equal(t, "Load: Low (1-2)", workloadLabelName(2))
	assert.Equal(t, "Load: Medium (3)", workloadLabelName(3))
	assert.Equal(t, "Load: High (4)", workloadLabelName(4))
	assert.Equal(t, "Load: Critical (5)", workloadLabelName(5))
	assert.Empty(t, workloadLabelName(0))
}
