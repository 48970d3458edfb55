package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailSender delivers digests through Resend. A missing API key
// disables it without failing the notification flow.
type EmailSender struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

func NewEmailSender(apiKey, from string, logger *slog.Logger) *EmailSender {
	s := &EmailSender{from: from, logger: logger}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

// Enabled reports whether email delivery is configured.
func (s *EmailSender) Enabled() bool {
	return s.client != nil && s.from != ""
}

// Send delivers one HTML email.
func (s *EmailSender) Send(ctx context.Context, to []string, subject, html string) error {
	if !s.Enabled() {
		return fmt.Errorf("email delivery is not configured")
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent", slog.String("id", sent.Id), slog.String("subject", subject))
	return nil
}
