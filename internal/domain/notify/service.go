// Package notify sends report reminders and deadline digests over
// Telegram and email.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samihq/weekly-reports/internal/domain/reports"
	"github.com/samihq/weekly-reports/internal/domain/users"
	"github.com/samihq/weekly-reports/pkg/i18n"
	"github.com/samihq/weekly-reports/pkg/push"
	"github.com/samihq/weekly-reports/pkg/week"
)

// directory lists the people notifications go to.
type directory interface {
	ListWithoutReport(ctx context.Context, weekNumber, year int) ([]users.User, error)
	Get(ctx context.Context, id int64) (*users.User, error)
}

// messenger delivers Telegram messages.
type messenger interface {
	Enabled() bool
	Send(ctx context.Context, msg *push.Message) error
	SendBatch(ctx context.Context, messages []*push.Message) error
}

// mailer delivers email digests.
type mailer interface {
	Enabled() bool
	Send(ctx context.Context, to []string, subject, html string) error
}

// Service fans reminders and digests out to the right people.
type Service struct {
	users    directory
	telegram messenger
	email    mailer
	adminIDs []int64
	logger   *slog.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewService(dir directory, telegram messenger, email mailer, adminIDs []int64, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		users:    dir,
		telegram: telegram,
		email:    email,
		adminIDs: adminIDs,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// RemindMissing pings everyone who has not filed this week's report.
func (s *Service) RemindMissing(ctx context.Context) (sent, failed int, err error) {
	weekNumber, year := week.At(s.now().In(s.loc))

	missing, err := s.users.ListWithoutReport(ctx, weekNumber, year)
	if err != nil {
		return 0, 0, err
	}
	if len(missing) == 0 {
		s.logger.Info("reminder run: everyone reported", slog.Int("week", weekNumber))
		return 0, 0, nil
	}
	if !s.telegram.Enabled() {
		return 0, len(missing), fmt.Errorf("telegram delivery is not configured")
	}

	messages := make([]*push.Message, 0, len(missing))
	for _, u := range missing {
		messages = append(messages, &push.Message{
			ChatID:    u.TelegramID,
			Text:      reminderText(u.Language),
			ParseMode: "HTML",
		})
	}

	batchErr := s.telegram.SendBatch(ctx, messages)
	sent = len(messages)
	if batchErr != nil {
		// SendBatch reports the first failure but delivers the rest.
		failed = 1
		sent--
	}
	s.logger.Info("reminders sent",
		slog.Int("week", weekNumber),
		slog.Int("recipients", len(missing)),
		slog.Int("sent", sent))
	return sent, failed, nil
}

// DeadlineDigest tells each manager which of their people missed this
// week's deadline. Managers with an email address also get the digest
// by mail.
func (s *Service) DeadlineDigest(ctx context.Context) error {
	weekNumber, year := week.At(s.now().In(s.loc))

	missing, err := s.users.ListWithoutReport(ctx, weekNumber, year)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		s.logger.Info("deadline check: everyone reported", slog.Int("week", weekNumber))
		return nil
	}

	byManager := map[int64][]users.User{}
	for _, u := range missing {
		if u.ManagerID != nil {
			byManager[*u.ManagerID] = append(byManager[*u.ManagerID], u)
		}
	}

	var firstErr error
	for managerID, team := range byManager {
		manager, err := s.users.Get(ctx, managerID)
		if err != nil {
			s.logger.Warn("deadline digest: manager lookup failed",
				slog.Int64("manager_id", managerID), slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		names := make([]string, 0, len(team))
		for _, u := range team {
			names = append(names, u.Name)
		}
		text := digestText(manager.Language, weekNumber, names)

		if s.telegram.Enabled() {
			err := s.telegram.Send(ctx, &push.Message{
				ChatID:    manager.TelegramID,
				Text:      text,
				ParseMode: "HTML",
			})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if s.email.Enabled() && manager.Email != "" {
			subject := fmt.Sprintf("Weekly reports: %d missing for week %d", len(team), weekNumber)
			html := digestHTML(manager.Language, weekNumber, names)
			if err := s.email.Send(ctx, []string{manager.Email}, subject, html); err != nil {
				s.logger.Warn("deadline digest email failed",
					slog.String("to", manager.Email), slog.Any("error", err))
			}
		}
	}

	s.logger.Info("deadline digest sent",
		slog.Int("week", weekNumber),
		slog.Int("missing", len(missing)),
		slog.Int("managers", len(byManager)))
	return firstErr
}

// NotifyNewReport tells a manager one of their people filed a report.
func (s *Service) NotifyNewReport(ctx context.Context, manager *users.User, employee *users.User, report *reports.Report) error {
	if !s.telegram.Enabled() {
		return nil
	}
	return s.telegram.Send(ctx, &push.Message{
		ChatID:    manager.TelegramID,
		Text:      newReportText(manager.Language, employee.Name, report),
		ParseMode: "HTML",
	})
}

// NotifyAdmins broadcasts a plain message to every configured admin.
func (s *Service) NotifyAdmins(ctx context.Context, text string) error {
	if !s.telegram.Enabled() || len(s.adminIDs) == 0 {
		return nil
	}
	messages := make([]*push.Message, 0, len(s.adminIDs))
	for _, id := range s.adminIDs {
		messages = append(messages, &push.Message{ChatID: id, Text: text, ParseMode: "HTML"})
	}
	return s.telegram.SendBatch(ctx, messages)
}

func reminderText(lang string) string {
	if lang == "en" {
		return "⏰ <b>Reminder!</b>\n\nDon't forget to submit your weekly report by the end of the day."
	}
	return "⏰ <b>Нагадування!</b>\n\nНе забудьте надіслати тижневий звіт до кінця робочого дня."
}

func digestText(lang string, weekNumber int, names []string) string {
	list := strings.Join(names, ", ")
	if lang == "en" {
		return fmt.Sprintf("⚠️ <b>Report Deadline</b>\n\nThe following employees haven't submitted reports for week %d:\n%s", weekNumber, list)
	}
	return fmt.Sprintf("⚠️ <b>Дедлайн звітності</b>\n\nНаступні співробітники не надіслали звіт за тиждень %d:\n%s", weekNumber, list)
}

func digestHTML(lang string, weekNumber int, names []string) string {
	var b strings.Builder
	if lang == "en" {
		fmt.Fprintf(&b, "<h3>Report Deadline</h3><p>Missing reports for week %d:</p><ul>", weekNumber)
	} else {
		fmt.Fprintf(&b, "<h3>Дедлайн звітності</h3><p>Не надіслані звіти за тиждень %d:</p><ul>", weekNumber)
	}
	for _, name := range names {
		fmt.Fprintf(&b, "<li>%s</li>", name)
	}
	b.WriteString("</ul>")
	return b.String()
}

func newReportText(lang, employeeName string, report *reports.Report) string {
	workload := i18n.Workload(report.Workload, i18n.Lang(lang))
	rate := i18n.CompletionRate(report.CompletionRate)
	if lang == "en" {
		return fmt.Sprintf("📥 <b>New Report!</b>\n\n👤 %s\n📋 Week %d\n📊 Workload: %s\n✅ Completed: %s",
			employeeName, report.WeekNumber, workload, rate)
	}
	return fmt.Sprintf("📥 <b>Новий звіт!</b>\n\n👤 %s\n📋 Тиждень %d\n📊 Навантаження: %s\n✅ Виконано: %s",
		employeeName, report.WeekNumber, workload, rate)
}
