package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SePushMonitor/internal/clock"
	"SePushMonitor/internal/config"
	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/infrastructure/location"
	"SePushMonitor/internal/infrastructure/scheduler"
	"SePushMonitor/internal/infrastructure/sepush"
	"SePushMonitor/internal/infrastructure/telegram"
	"SePushMonitor/internal/logging"
	"SePushMonitor/internal/logpanel"
	"SePushMonitor/internal/ports"
	"SePushMonitor/internal/storage"
	"SePushMonitor/internal/usecase"
)

// Application wires configs to the orchestrator and lifecycle handling.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *storage.Store
	db       *usecase.DB
	panel    *logpanel.Panel
	notifier ports.Notifier

	bootstrapped bool
	lastStage    string
}

// New builds a runnable application instance. The caller owns Close.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var clk ports.Clock = clock.System{}
	if instant, ok := cfg.Mocking.FixedInstant(); ok {
		clk = clock.Fixed{Instant: instant}
	}

	store, err := storage.Open(cfg.Database.Path, clk, cfg.Cache.DefaultTTLMinutes, baseLogger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	var api ports.PushAPI
	if cfg.Mocking.UseMock {
		api = sepush.NewMock(cfg.Mocking.Latency(), baseLogger.With("component", "sepush.mock"))
	} else {
		api = sepush.NewClient(cfg.API.BaseURL, store, baseLogger.With("component", "sepush"))
	}

	panel := logpanel.New()
	db := usecase.NewDB(usecase.DBDeps{
		API:     api,
		Store:   store,
		Locator: location.NewStatic(cfg.Location.Latitude, cfg.Location.Longitude),
		Clock:   clk,
		Logger:  baseLogger.With("component", "db"),
		Panel:   panel,
	})

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		store:    store,
		db:       db,
		panel:    panel,
		notifier: notifier,
	}, nil
}

// DB exposes the orchestrator for embedding consumers.
func (a *Application) DB() *usecase.DB {
	return a.db
}

// Close releases the persistent store.
func (a *Application) Close() error {
	return a.store.Close()
}

// Run bootstraps the cache and drives the periodic sync until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	a.registerFromConfig(ctx)
	a.bootstrap(ctx)

	interval := a.syncInterval()
	sched := scheduler.NewIntervalScheduler(interval)
	if err := sched.Start(ctx, func(t time.Time) { a.syncOnce(ctx, t) }); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	a.logger.Info("sync loop started", "interval", interval)

	<-ctx.Done()
	if err := sched.Stop(context.Background()); err != nil {
		a.logger.Warn("stopping scheduler", "error", err)
	}
	return nil
}

// registerFromConfig commits a config-supplied credential on first run; an
// already-registered store is authoritative and never overwritten.
func (a *Application) registerFromConfig(ctx context.Context) {
	if a.cfg.API.Key == "" || a.db.IsRegistered() {
		return
	}
	if res := a.db.RegisterAPIKey(ctx, a.cfg.API.Key); !res.IsSuccess {
		a.logger.Error("registering configured API key failed", "errors", res.Errors)
		return
	}
	a.logger.Info("API key registered from configuration")
}

// bootstrap runs the orchestrator's initialization chain, but only once a
// key is registered; an unregistered process defers it entirely instead of
// attempting a doomed (or, with the mock gateway, unauthorized) fetch.
func (a *Application) bootstrap(ctx context.Context) {
	if a.bootstrapped {
		return
	}
	if !a.db.IsRegistered() {
		a.logger.Info("bootstrap deferred until an API key is registered")
		return
	}
	if init := a.db.InitializeApplication(ctx); !init.IsSuccess {
		a.logger.Warn("bootstrap incomplete", "errors", init.Errors)
		return
	}
	a.bootstrapped = true
}

func (a *Application) syncOnce(ctx context.Context, t time.Time) {
	// Registration may have happened after startup; catch up before syncing.
	a.bootstrap(ctx)

	a.logger.Info("sync started", "at", t)
	if res := a.db.FullSync(ctx); !res.IsSuccess {
		a.logger.Warn("sync failed", "errors", res.Errors)
	}
	a.alertOnStageChange(ctx)
	a.reportPanel()
}

// alertOnStageChange notifies the configured channel when the national
// stage differs from the previous sync.
func (a *Application) alertOnStageChange(ctx context.Context) {
	status := a.db.GetStatus(ctx)
	if !status.IsSuccess {
		return
	}

	stage := status.Data.Eskom.Stage
	if stage == a.lastStage || a.lastStage == "" {
		a.lastStage = stage
		return
	}
	a.lastStage = stage

	if a.notifier == nil {
		return
	}
	alert := domain.StageAlert{Location: status.Data.Eskom.Name, Stage: stage}
	if err := a.notifier.Publish(ctx, alert); err != nil {
		a.logger.Warn("stage alert not delivered", "error", err)
	}
}

func (a *Application) reportPanel() {
	snap := a.panel.Drain()
	for _, msg := range snap.Success {
		a.logger.Info("panel", "message", msg)
	}
	for _, msg := range snap.Warnings {
		a.logger.Warn("panel", "message", msg)
	}
	for _, msg := range snap.Errors {
		a.logger.Error("panel", "message", msg)
	}
}

// syncInterval resolves the loop period from the persisted settings; the
// documented default applies on first run.
func (a *Application) syncInterval() time.Duration {
	settings := a.db.GetOrDefaultUserSettings().Data
	minutes := settings.SyncIntervalMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}
