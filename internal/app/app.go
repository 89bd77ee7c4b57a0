package app

import (
	"context"
	"fmt"
	"log/slog"

	"EuroparlScraper/internal/archive"
	"EuroparlScraper/internal/config"
	"EuroparlScraper/internal/infrastructure/fetch"
	"EuroparlScraper/internal/infrastructure/hub"
	"EuroparlScraper/internal/infrastructure/storage"
	"EuroparlScraper/internal/infrastructure/telegram"
	"EuroparlScraper/internal/logging"
	"EuroparlScraper/internal/ports"
	"EuroparlScraper/internal/usecase"
)

// Application wires configuration into the scraping pipeline.
type Application struct {
	pipeline *usecase.Pipeline
	store    *storage.SQLiteStore
}

// New builds a runnable application instance. Publisher and notifier are
// only wired when their credentials are present.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := fetch.New(fetch.Options{
		Timeout:       cfg.Fetch.Timeout(),
		RetryAttempts: cfg.Fetch.RetryAttempts,
		RetryWait:     cfg.Fetch.RetryWait(),
		UserAgent:     cfg.Fetch.UserAgent,
	})

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	walker := archive.NewWalker(fetcher, store, baseLogger.With("component", "walker"))

	var publisher ports.Publisher
	if cfg.Hub.Token != "" {
		publisher = hub.NewPublisher(cfg.Hub.Endpoint, cfg.Hub.Username, cfg.Hub.Token)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline, err := usecase.NewPipeline(usecase.Deps{
		Walker:         walker,
		Store:          store,
		Publisher:      publisher,
		Notifier:       notifier,
		Logger:         baseLogger.With("component", "pipeline"),
		Archives:       cfg.Archives,
		Extract:        cfg.Extract,
		PublishPartial: cfg.Hub.PublishPartial(),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Application{pipeline: pipeline, store: store}, nil
}

// Run executes one full scrape-and-publish cycle.
func (a *Application) Run(ctx context.Context) error {
	defer a.store.Close()
	return a.pipeline.Run(ctx)
}
