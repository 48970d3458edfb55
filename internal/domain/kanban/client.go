// Package kanban mirrors filed reports onto a Trello board: one card per
// report, routed and labelled by how the week went.
package kanban

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const trelloAPIURL = "https://api.trello.com/1"

// Board list names, must match the real board.
const (
	ListNewReports = "1. NEW REPORTS"
	ListInReview   = "🔍 2. IN REVIEW"
	ListApproved   = "✅ 3. APPROVED"
	ListFollowUp   = "⚠️ 4. FOLLOW-UP NEEDED (Проблемні)"
	ListArchived   = "📊 5. DONE & ARCHIVED"
)

var listNames = []string{ListNewReports, ListInReview, ListApproved, ListFollowUp, ListArchived}

// labelConfig pairs a board label with its colour.
type labelConfig struct {
	Name  string
	Color string
}

var labelConfigs = []labelConfig{
	{"Load: Low (1-2)", "green"},
	{"Load: Medium (3)", "yellow"},
	{"Load: High (4)", "orange"},
	{"Load: Critical (5)", "red"},
	{"Needs Review", "blue"},
	{"Approved", "purple"},
	{"Has Blockers", "black"},
	{"Overdue ETA", "red"},
	{"Has Concerns", "orange"},
	{"All Tasks Done", "green"},
	{"High Performance", "purple"},
}

const (
	maxRetries = 3
	retryBase  = 2 * time.Second
)

// Card is a Trello card as the API returns it.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ShortURL string `json:"shortUrl"`
	IDList   string `json:"idList"`
	Closed   bool   `json:"closed"`
}

type boardList struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type boardLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type checklist struct {
	ID string `json:"id"`
}

// Client is a minimal Trello API client scoped to one board. Transient
// API errors are retried with exponential backoff.
type Client struct {
	baseURL string
	key     string
	token   string
	boardID string
	http    *http.Client
	logger  *slog.Logger
	backoff time.Duration

	mu          sync.Mutex
	initialized bool
	lists       map[string]string
	labels      map[string]string
}

func NewClient(apiKey, token, boardID string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: trelloAPIURL,
		key:     apiKey,
		token:   token,
		boardID: boardID,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		backoff: retryBase,
		lists:   map[string]string{},
		labels:  map[string]string{},
	}
}

// WithBaseURL points the client at a different API endpoint, for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Initialize resolves the board and makes sure every list and label the
// workflow needs exists. Safe to call repeatedly.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}

	var board struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodGet, "/boards/"+c.boardID, nil, &board); err != nil {
		return fmt.Errorf("cannot access board %s: %w", c.boardID, err)
	}
	c.boardID = board.ID
	c.logger.Info("resolved trello board", slog.String("name", board.Name), slog.String("id", board.ID))

	if err := c.initLists(ctx); err != nil {
		return err
	}
	if err := c.initLabels(ctx); err != nil {
		return err
	}

	c.initialized = true
	return nil
}

func (c *Client) initLists(ctx context.Context) error {
	var existing []boardList
	if err := c.do(ctx, http.MethodGet, "/boards/"+c.boardID+"/lists", nil, &existing); err != nil {
		return fmt.Errorf("failed to load board lists: %w", err)
	}
	byName := map[string]string{}
	for _, l := range existing {
		byName[l.Name] = l.ID
	}

	for _, name := range listNames {
		if id, ok := byName[name]; ok {
			c.lists[name] = id
			continue
		}
		var created boardList
		err := c.do(ctx, http.MethodPost, "/lists", map[string]any{
			"name":    name,
			"idBoard": c.boardID,
		}, &created)
		if err != nil {
			return fmt.Errorf("failed to create list %q: %w", name, err)
		}
		c.lists[name] = created.ID
		c.logger.Info("created trello list", slog.String("name", name))
	}
	return nil
}

func (c *Client) initLabels(ctx context.Context) error {
	var existing []boardLabel
	if err := c.do(ctx, http.MethodGet, "/boards/"+c.boardID+"/labels", nil, &existing); err != nil {
		return fmt.Errorf("failed to load board labels: %w", err)
	}
	byName := map[string]string{}
	for _, l := range existing {
		byName[l.Name] = l.ID
	}

	for _, cfg := range labelConfigs {
		if id, ok := byName[cfg.Name]; ok {
			c.labels[cfg.Name] = id
			continue
		}
		var created boardLabel
		err := c.do(ctx, http.MethodPost, "/labels", map[string]any{
			"name":    cfg.Name,
			"color":   cfg.Color,
			"idBoard": c.boardID,
		}, &created)
		if err != nil {
			return fmt.Errorf("failed to create label %q: %w", cfg.Name, err)
		}
		c.labels[cfg.Name] = created.ID
		c.logger.Info("created trello label", slog.String("name", cfg.Name))
	}
	return nil
}

func (c *Client) listID(name string) string  { return c.lists[name] }
func (c *Client) labelID(name string) string { return c.labels[name] }

// CreateCard creates a card with labels and returns it.
func (c *Client) CreateCard(ctx context.Context, listID, name, desc string, labelIDs []string) (*Card, error) {
	body := map[string]any{
		"name":   name,
		"desc":   desc,
		"idList": listID,
	}
	if len(labelIDs) > 0 {
		body["idLabels"] = strings.Join(labelIDs, ",")
	}
	var card Card
	if err := c.do(ctx, http.MethodPost, "/cards", body, &card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	c.logger.Info("created trello card", slog.String("card_id", card.ID), slog.String("name", card.Name))
	return &card, nil
}

// UpdateCard rewrites a card's name, description and labels.
func (c *Client) UpdateCard(ctx context.Context, cardID, name, desc string, labelIDs []string) (*Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPut, "/cards/"+cardID, map[string]any{
		"name":     name,
		"desc":     desc,
		"idLabels": strings.Join(labelIDs, ","),
	}, &card)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return &card, nil
}

// AddChecklist attaches a named checklist with its items to a card.
func (c *Client) AddChecklist(ctx context.Context, cardID, name string, items []string) error {
	var cl checklist
	err := c.do(ctx, http.MethodPost, "/checklists", map[string]any{
		"idCard": cardID,
		"name":   name,
	}, &cl)
	if err != nil {
		return fmt.Errorf("failed to create checklist %q: %w", name, err)
	}
	for _, item := range items {
		err := c.do(ctx, http.MethodPost, "/checklists/"+cl.ID+"/checkItems", map[string]any{
			"name": item,
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to add checklist item: %w", err)
		}
	}
	return nil
}

// MoveCard puts a card into the named board list.
func (c *Client) MoveCard(ctx context.Context, cardID, listName string) error {
	listID := c.listID(listName)
	if listID == "" {
		return fmt.Errorf("list not found: %s", listName)
	}
	err := c.do(ctx, http.MethodPut, "/cards/"+cardID, map[string]any{"idList": listID}, nil)
	if err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}
	c.logger.Info("moved trello card", slog.String("card_id", cardID), slog.String("list", listName))
	return nil
}

// ArchiveCard closes a card.
func (c *Client) ArchiveCard(ctx context.Context, cardID string) error {
	err := c.do(ctx, http.MethodPut, "/cards/"+cardID, map[string]any{"closed": true}, nil)
	if err != nil {
		return fmt.Errorf("failed to archive card: %w", err)
	}
	return nil
}

// do performs one API call, retrying rate limits and server errors with
// exponential backoff: 2s, 4s, 8s.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	u := c.baseURL + path + "?" + url.Values{
		"key":   {c.key},
		"token": {c.token},
	}.Encode()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			c.logger.Warn("trello api retry",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.String("path", path))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if retryable(resp.StatusCode) {
			resp.Body.Close()
			lastErr = fmt.Errorf("trello api status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("trello api status %d: %s", resp.StatusCode, msg)
		}

		if out != nil {
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		} else {
			resp.Body.Close()
		}
		return nil
	}
	return fmt.Errorf("trello api gave up after %d retries: %w", maxRetries, lastErr)
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
