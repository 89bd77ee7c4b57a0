package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"EuroparlScraper/internal/archive"
	"EuroparlScraper/internal/config"
	"EuroparlScraper/internal/domain"
	"EuroparlScraper/internal/ports"
)

// Walker runs one archive traversal.
type Walker interface {
	Walk(ctx context.Context, opts archive.Options) ([]domain.Record, domain.Summary, error)
}

// Deps wires the driven adapters into the scraping pipeline. Publisher and
// Notifier may be nil; the corresponding steps are then skipped.
type Deps struct {
	Walker    Walker
	Store     ports.RecordStore
	Publisher ports.Publisher
	Notifier  ports.Notifier
	Logger    *slog.Logger

	Archives       []config.ArchiveConfig
	Extract        config.ExtractConfig
	PublishPartial bool
}

// Pipeline orchestrates the scrape-and-publish workflow: one sequential
// walk per configured archive, each feeding its own dataset repository.
type Pipeline struct {
	walker    Walker
	store     ports.RecordStore
	publisher ports.Publisher
	notifier  ports.Notifier
	logger    *slog.Logger

	archives       []config.ArchiveConfig
	extract        config.ExtractConfig
	patterns       []*regexp.Regexp
	publishPartial bool
}

// NewPipeline constructs the orchestration component, compiling the
// boilerplate patterns once.
func NewPipeline(deps Deps) (*Pipeline, error) {
	patterns, err := archive.CompilePatterns(deps.Extract.BoilerplatePatterns)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		walker:         deps.Walker,
		store:          deps.Store,
		publisher:      deps.Publisher,
		notifier:       deps.Notifier,
		logger:         logger,
		archives:       deps.Archives,
		extract:        deps.Extract,
		patterns:       patterns,
		publishPartial: deps.PublishPartial,
	}, nil
}

// Run walks every configured archive and publishes the results. It keeps
// going past a failed archive so the remaining ones still get processed;
// the first error is what the process exits with.
func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.archives) == 0 {
		return fmt.Errorf("no archives configured")
	}

	var runErr error
	for _, arc := range p.archives {
		if err := p.runArchive(ctx, arc); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("archive %s: %w", arc.Name, err))
		}
	}

	return runErr
}

func (p *Pipeline) runArchive(ctx context.Context, arc config.ArchiveConfig) error {
	extractor := archive.NewExtractor(archive.ExtractorSettings{
		ContainerSelector: arc.ContentSelector,
		Language:          arc.Language,
		MinLength:         p.extract.MinLength,
		Boilerplate:       p.patterns,
	})

	records, summary, walkErr := p.walker.Walk(ctx, archive.Options{
		StartURL:  arc.StartURL,
		NextLabel: arc.NextLabel,
		Source:    arc.Name,
		Extractor: extractor,
	})

	p.logger.Info("walk finished",
		"archive", arc.Name,
		"collected", summary.Collected,
		"skipped", summary.Skipped,
		"completed", summary.Completed,
		"last_url", summary.LastURL)

	p.notify(ctx, arc.Name, summary)

	publishErr := p.publish(ctx, arc, records, summary)

	switch {
	case walkErr != nil:
		return walkErr
	case publishErr != nil:
		return publishErr
	case summary.Collected == 0:
		return fmt.Errorf("no records collected")
	default:
		return nil
	}
}

// publish hands the accumulated dataset to the publisher. A cut-short walk
// only publishes when the partial policy allows it. The store, when
// present, is the source of truth so records from an earlier interrupted
// run are included.
func (p *Pipeline) publish(ctx context.Context, arc config.ArchiveConfig, records []domain.Record, summary domain.Summary) error {
	if p.publisher == nil {
		p.logger.Info("publishing disabled, dataset kept locally", "archive", arc.Name)
		return nil
	}
	if !summary.Completed && !p.publishPartial {
		p.logger.Warn("walk was cut short, partial publish disabled by policy", "archive", arc.Name)
		return nil
	}

	dataset := records
	if p.store != nil {
		stored, err := p.store.All(ctx, arc.Name)
		if err != nil {
			return fmt.Errorf("load stored records: %w", err)
		}
		dataset = stored
	}
	if len(dataset) == 0 {
		p.logger.Warn("nothing to publish", "archive", arc.Name)
		return nil
	}

	if err := p.publisher.Publish(ctx, arc.HubRepo, dataset); err != nil {
		return fmt.Errorf("publish %d records: %w", len(dataset), err)
	}

	p.logger.Info("dataset published", "archive", arc.Name, "repo", arc.HubRepo, "records", len(dataset))
	return nil
}

func (p *Pipeline) notify(ctx context.Context, name string, summary domain.Summary) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifySummary(ctx, summaryMessage(name, summary)); err != nil {
		// Notification is best effort and never changes the exit status.
		p.logger.Warn("summary notification failed", "archive", name, "error", err)
	}
}

func summaryMessage(name string, s domain.Summary) string {
	status := "completed"
	if !s.Completed {
		status = "cut short"
	}
	return fmt.Sprintf("%s: %d records collected, %d skipped, walk %s (last page: %s)",
		name, s.Collected, s.Skipped, status, s.LastURL)
}
