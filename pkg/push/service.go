// Package push delivers Telegram chat messages through the Bot API.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// telegramAPIBase is the Bot API endpoint template.
	telegramAPIBase = "https://api.telegram.org/bot%s/%s"

	// RequestTimeout for Bot API requests
	RequestTimeout = 10 * time.Second

	// batchDelay spaces out bulk sends so the Bot API rate limit
	// (roughly 30 messages per second) is never hit.
	batchDelay = 100 * time.Millisecond
)

// Message represents one outgoing Telegram message
type Message struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"` // "HTML" or "MarkdownV2"
}

// apiResponse is the Bot API envelope
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// Service handles Telegram message delivery
type Service struct {
	token   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewService creates a new Telegram delivery service. An empty token
// yields a disabled service whose sends fail fast.
func NewService(token string, logger *slog.Logger) *Service {
	return &Service{
		token: token,
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		logger: logger,
	}
}

// WithBaseURL overrides the Bot API host, used in tests.
func (s *Service) WithBaseURL(url string) *Service {
	s.baseURL = url
	return s
}

// Enabled reports whether a bot token is configured.
func (s *Service) Enabled() bool {
	return s.token != ""
}

// Send delivers one message to a chat
func (s *Service) Send(ctx context.Context, msg *Message) error {
	if !s.Enabled() {
		return errors.New("telegram bot token is not configured")
	}
	if msg.ChatID == 0 {
		return errors.New("chat id is required")
	}
	if msg.Text == "" {
		return errors.New("message text is required")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		s.logger.Error("failed to parse telegram response", "body", string(body), "error", err)
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}

	if !apiResp.OK {
		s.logger.Warn("telegram send failed", "description", apiResp.Description, "chat_id", msg.ChatID)
		return fmt.Errorf("telegram send failed: %s", apiResp.Description)
	}

	s.logger.Info("telegram message sent", "chat_id", msg.ChatID)
	return nil
}

// SendBatch delivers messages to multiple chats, pacing sends to stay
// under the Bot API rate limit. Individual failures are logged and
// skipped; the first error is returned after the batch finishes.
func (s *Service) SendBatch(ctx context.Context, messages []*Message) error {
	if len(messages) == 0 {
		return nil
	}

	var firstErr error
	sent := 0
	for i, msg := range messages {
		if msg.ChatID == 0 || msg.Text == "" {
			continue
		}
		if err := s.Send(ctx, msg); err != nil {
			s.logger.Warn("batch send failed for chat", "chat_id", msg.ChatID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent++

		if i < len(messages)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(batchDelay):
			}
		}
	}

	s.logger.Info("telegram batch sent", "count", sent, "total", len(messages))
	return firstErr
}

func (s *Service) methodURL(method string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/bot%s/%s", s.baseURL, s.token, method)
	}
	return fmt.Sprintf(telegramAPIBase, s.token, method)
}
