package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"EuroparlScraper/internal/domain"
	"EuroparlScraper/internal/ports"
)

// State enumerates the walker phases. One stop moves through
// fetching -> extracting -> advancing; the loop leaves via done or failed.
type State string

const (
	StateStart      State = "start"
	StateFetching   State = "fetching"
	StateExtracting State = "extracting"
	StateAdvancing  State = "advancing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Options configures one walk over a single archive.
type Options struct {
	StartURL  string
	NextLabel string
	Source    string
	Extractor *Extractor
}

// Walker drives the fetch-extract-advance loop over an archive. Traversal
// is strictly sequential: each stop's next pointer is only discoverable
// from the previous stop's page.
type Walker struct {
	fetcher ports.Fetcher
	store   ports.RecordStore
	logger  *slog.Logger
}

// NewWalker wires the fetcher and an optional record store. When a store is
// present every record is persisted as soon as it is produced, so an
// aborted walk loses nothing already collected.
func NewWalker(fetcher ports.Fetcher, store ports.RecordStore, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{fetcher: fetcher, store: store, logger: logger}
}

// Walk traverses the archive from opts.StartURL until the next-link chain
// ends. The collected records and a summary are always returned; err is
// non-nil only when the walk ended in the failed state.
func (w *Walker) Walk(ctx context.Context, opts Options) ([]domain.Record, domain.Summary, error) {
	var (
		records []domain.Record
		summary domain.Summary
		visited = map[string]struct{}{}

		// fromNext is true once the cursor points at a URL a resolved
		// next-link promised. Only those URLs may legitimately be gone.
		fromNext bool
	)

	w.logger.Debug("state transition", "state", StateStart, "url", opts.StartURL)

	ref, err := ParseReference(opts.StartURL)
	if err != nil {
		return w.fail(records, summary, fmt.Errorf("start url: %w", err))
	}

	for {
		visited[ref.URL] = struct{}{}
		summary.LastURL = ref.URL
		w.logger.Debug("state transition", "state", StateFetching, "url", ref.URL)

		tocHTML, err := w.fetcher.Fetch(ctx, ref.URL)
		if err != nil {
			if fromNext && errors.Is(err, ports.ErrNotFound) {
				// The previous page promised this URL; its absence means
				// the archive ran out, not that the walk broke. A missing
				// start URL is a broken deployment, not an empty archive.
				w.logger.Info("archive end reached", "url", ref.URL)
				break
			}
			return w.fail(records, summary, fmt.Errorf("fetch toc %s: %w", ref.URL, err))
		}

		w.logger.Debug("state transition", "state", StateExtracting, "url", ref.DocumentURL())

		record, err := w.processDocument(ctx, ref, opts)
		switch {
		case err == nil:
			if w.store != nil {
				if saveErr := w.store.Save(ctx, record); saveErr != nil {
					return w.fail(records, summary, fmt.Errorf("save record %s: %w", record.URL, saveErr))
				}
			}
			records = append(records, record)
			summary.Collected++
		case errors.Is(err, ErrNoContent):
			w.logger.Warn("skipping document without usable content", "url", ref.DocumentURL())
			summary.Skipped++
		default:
			return w.fail(records, summary, err)
		}

		w.logger.Debug("state transition", "state", StateAdvancing, "url", ref.URL)

		tocDoc, err := goquery.NewDocumentFromReader(strings.NewReader(tocHTML))
		if err != nil {
			return w.fail(records, summary, fmt.Errorf("parse toc %s: %w", ref.URL, err))
		}

		next, ok, err := ResolveNext(tocDoc, ref.URL, opts.NextLabel)
		if err != nil {
			return w.fail(records, summary, fmt.Errorf("resolve next from %s: %w", ref.URL, err))
		}
		if !ok {
			break
		}
		if _, seen := visited[next]; seen {
			w.logger.Warn("next link revisits a walked page, stopping", "url", next)
			break
		}

		nextRef, err := ParseReference(next)
		if err != nil {
			return w.fail(records, summary, fmt.Errorf("next url: %w", err))
		}
		ref = nextRef
		fromNext = true
	}

	summary.Completed = true
	w.logger.Debug("state transition", "state", StateDone,
		"collected", summary.Collected, "skipped", summary.Skipped)
	return records, summary, nil
}

// processDocument fetches the full document behind a TOC reference and
// turns it into a record. ErrNoContent passes through for skip handling.
func (w *Walker) processDocument(ctx context.Context, ref Reference, opts Options) (domain.Record, error) {
	docURL := ref.DocumentURL()

	html, err := w.fetcher.Fetch(ctx, docURL)
	if err != nil {
		return domain.Record{}, fmt.Errorf("fetch document %s: %w", docURL, err)
	}

	text, err := opts.Extractor.Extract(html)
	if err != nil {
		return domain.Record{}, fmt.Errorf("extract %s: %w", docURL, err)
	}

	return domain.Record{
		URL:    docURL,
		Date:   ref.Date,
		Text:   text,
		Source: opts.Source,
	}, nil
}

func (w *Walker) fail(records []domain.Record, summary domain.Summary, err error) ([]domain.Record, domain.Summary, error) {
	summary.Completed = false
	w.logger.Error("state transition", "state", StateFailed,
		"error", err, "collected", summary.Collected, "skipped", summary.Skipped)
	return records, summary, err
}
