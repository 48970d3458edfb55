package kanban

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samihq/weekly-reports/internal/domain/reports"
)

// cardRecorder stores the created card reference on the report.
type cardRecorder interface {
	AttachTrelloCard(ctx context.Context, reportID int64, cardID, cardURL string) error
}

// Service pushes reports onto the board and records the card reference.
type Service struct {
	client   *Client
	recorder cardRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(client *Client, recorder cardRecorder, logger *slog.Logger) *Service {
	return &Service{client: client, recorder: recorder, logger: logger, now: time.Now}
}

// Warmup resolves the board lists and labels ahead of the first sync.
func (s *Service) Warmup(ctx context.Context) error {
	return s.client.Initialize(ctx)
}

// SyncReport creates the board card for a report and links it back.
// Position is the reporter's role shown in the card body.
func (s *Service) SyncReport(ctx context.Context, report *reports.Report, position string) (*Card, error) {
	if err := s.client.Initialize(ctx); err != nil {
		return nil, err
	}

	listID := s.client.targetList(report)
	if listID == "" {
		return nil, fmt.Errorf("no target list for report %d", report.ID)
	}

	card, err := s.client.CreateCard(ctx,
		listID,
		CardName(report),
		CardDescription(report, position, s.now()),
		s.client.cardLabels(report))
	if err != nil {
		return nil, err
	}

	completed, notCompleted := checklistItems(report)
	if len(completed) > 0 {
		if err := s.client.AddChecklist(ctx, card.ID, "✅ Виконані задачі", completed); err != nil {
			s.logger.Warn("failed to add completed checklist", slog.String("card_id", card.ID), slog.Any("error", err))
		}
	}
	if len(notCompleted) > 0 {
		if err := s.client.AddChecklist(ctx, card.ID, "❌ Невиконані задачі", notCompleted); err != nil {
			s.logger.Warn("failed to add not completed checklist", slog.String("card_id", card.ID), slog.Any("error", err))
		}
	}

	cardURL := card.URL
	if cardURL == "" {
		cardURL = card.ShortURL
	}
	if err := s.recorder.AttachTrelloCard(ctx, report.ID, card.ID, cardURL); err != nil {
		return nil, fmt.Errorf("failed to link card to report: %w", err)
	}

	s.logger.Info("report synced to board",
		slog.Int64("report_id", report.ID),
		slog.String("card_id", card.ID))
	return card, nil
}

// UpdateReport rewrites an existing card after a report changed.
func (s *Service) UpdateReport(ctx context.Context, report *reports.Report, position string) (*Card, error) {
	if report.TrelloCardID == nil {
		return s.SyncReport(ctx, report, position)
	}
	if err := s.client.Initialize(ctx); err != nil {
		return nil, err
	}
	return s.client.UpdateCard(ctx, *report.TrelloCardID,
		CardName(report),
		CardDescription(report, position, s.now()),
		s.client.cardLabels(report))
}

// Approve moves a report's card into the approved list.
func (s *Service) Approve(ctx context.Context, report *reports.Report) error {
	if report.TrelloCardID == nil {
		return fmt.Errorf("report %d has no card", report.ID)
	}
	if err := s.client.Initialize(ctx); err != nil {
		return err
	}
	return s.client.MoveCard(ctx, *report.TrelloCardID, ListApproved)
}

// Archive closes a report's card.
func (s *Service) Archive(ctx context.Context, report *reports.Report) error {
	if report.TrelloCardID == nil {
		return fmt.Errorf("report %d has no card", report.ID)
	}
	if err := s.client.Initialize(ctx); err != nil {
		return err
	}
	return s.client.ArchiveCard(ctx, *report.TrelloCardID)
}
