package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samihq/weekly-reports/internal/api"
	"github.com/samihq/weekly-reports/internal/domain/importer"
	importerhandler "github.com/samihq/weekly-reports/internal/domain/importer/handler"
	"github.com/samihq/weekly-reports/internal/domain/kanban"
	kanbanhandler "github.com/samihq/weekly-reports/internal/domain/kanban/handler"
	"github.com/samihq/weekly-reports/internal/domain/notify"
	"github.com/samihq/weekly-reports/internal/domain/reports"
	reportshandler "github.com/samihq/weekly-reports/internal/domain/reports/handler"
	reportsrepo "github.com/samihq/weekly-reports/internal/domain/reports/repository"
	reportsservice "github.com/samihq/weekly-reports/internal/domain/reports/service"
	"github.com/samihq/weekly-reports/internal/domain/settings"
	settingshandler "github.com/samihq/weekly-reports/internal/domain/settings/handler"
	"github.com/samihq/weekly-reports/internal/domain/stats"
	statshandler "github.com/samihq/weekly-reports/internal/domain/stats/handler"
	"github.com/samihq/weekly-reports/internal/domain/users"
	usershandler "github.com/samihq/weekly-reports/internal/domain/users/handler"
	"github.com/samihq/weekly-reports/pkg/config"
	"github.com/samihq/weekly-reports/pkg/cron"
	"github.com/samihq/weekly-reports/pkg/db"
	"github.com/samihq/weekly-reports/pkg/i18n"
	"github.com/samihq/weekly-reports/pkg/push"
	"github.com/samihq/weekly-reports/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	UsersRepo    *users.Repository
	ReportsRepo  reportsrepo.ReportRepository
	StatsRepo    *stats.Repository
	SettingsRepo *settings.Repository

	// Services
	UsersService   *users.Service
	ReportsService *reportsservice.Service
	StatsService   *stats.Service
	ImportService  *importer.Service
	PushService    *push.Service
	EmailSender    *notify.EmailSender
	NotifyService  *notify.Service
	KanbanService  *kanban.Service
	FileStorage    storage.Storage
	Scheduler      *cron.Scheduler

	// Handlers
	Handlers api.Handlers
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initServices initializes the repository and service layers
func (d *Dependencies) initServices() error {
	loc, err := time.LoadLocation(d.Config.Report.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", d.Config.Report.Timezone, err)
	}

	d.UsersRepo = users.NewRepository(d.DB.Pool)
	d.ReportsRepo = reportsrepo.NewPostgresReportRepository(d.DB.Pool)
	d.StatsRepo = stats.NewRepository(d.DB.Pool)
	d.SettingsRepo = settings.NewRepository(d.DB.Pool)

	d.UsersService = users.NewService(d.UsersRepo, d.Logger)
	d.ReportsService = reportsservice.NewService(d.ReportsRepo, d.Logger)
	d.StatsService = stats.NewService(d.StatsRepo, d.Logger)
	d.ImportService = importer.NewService(d.Logger, loc)

	// Uploaded PDFs are kept on disk so the original submission can be
	// re-checked against the parsed report
	if d.Config.Storage.KeepUploads {
		d.FileStorage, err = storage.NewLocalStorage(d.Config.Storage.UploadDir)
		if err != nil {
			return fmt.Errorf("failed to init upload storage: %w", err)
		}
	}

	// Telegram delivery for reminders and digests
	d.PushService = push.NewService(d.Config.Telegram.BotToken, d.Logger)
	d.EmailSender = notify.NewEmailSender(d.Config.Email.ResendAPIKey, d.Config.Email.FromAddress, d.Logger)
	d.NotifyService = notify.NewService(
		d.UsersService,
		d.PushService,
		d.EmailSender,
		d.Config.Telegram.AdminUserIDs,
		loc,
		d.Logger,
	)

	// Trello board sync, only when configured
	if d.Config.Trello.Enabled {
		client := kanban.NewClient(
			d.Config.Trello.APIKey,
			d.Config.Trello.Token,
			d.Config.Trello.BoardID,
			d.Logger,
		)
		d.KanbanService = kanban.NewService(client, d.ReportsService, d.Logger)
	}

	d.Scheduler, err = cron.NewScheduler(d.NotifyService, d.Config.Report, d.Logger)
	if err != nil {
		return err
	}

	// Fan-out after each submission: board card plus manager notification,
	// both best-effort off the request path
	d.ReportsService.OnCreated(func(ctx context.Context, report *reports.Report) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		reporter, err := d.UsersService.Get(ctx, report.UserID)
		if err != nil {
			d.Logger.Warn("post-submit user lookup failed",
				slog.Int64("user_id", report.UserID), slog.Any("error", err))
			return
		}
		report.UserName = reporter.Name
		report.Team = string(reporter.Team)

		if d.KanbanService != nil {
			position := i18n.Position(reporter.Position, i18n.LangUK)
			if _, err := d.KanbanService.SyncReport(ctx, report, position); err != nil {
				d.Logger.Warn("trello sync failed",
					slog.Int64("report_id", report.ID), slog.Any("error", err))
			}
		}

		if reporter.ManagerID != nil {
			manager, err := d.UsersService.Get(ctx, *reporter.ManagerID)
			if err != nil {
				d.Logger.Warn("manager lookup failed",
					slog.Int64("manager_id", *reporter.ManagerID), slog.Any("error", err))
				return
			}
			if err := d.NotifyService.NotifyNewReport(ctx, manager, reporter, report); err != nil {
				d.Logger.Warn("manager notification failed",
					slog.Int64("report_id", report.ID), slog.Any("error", err))
			}
		}
	})

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes the HTTP handlers
func (d *Dependencies) initHandlers() {
	d.Handlers = api.Handlers{
		Users:    usershandler.NewUserHandler(d.UsersService),
		Reports:  reportshandler.NewReportHandler(d.ReportsService),
		Stats:    statshandler.NewStatsHandler(d.StatsService),
		Import:   importerhandler.NewImportHandler(d.ImportService, d.ReportsService, d.FileStorage, d.Logger),
		Settings: settingshandler.NewSettingsHandler(d.SettingsRepo),
		Webhook:  kanbanhandler.NewWebhookHandler(d.Logger),
	}
	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
