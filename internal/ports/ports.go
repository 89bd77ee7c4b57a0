package ports

import (
	"context"
	"errors"

	"EuroparlScraper/internal/domain"
)

// Fetch failure classes surfaced by Fetcher implementations. Callers pick
// them apart with errors.Is.
var (
	// ErrTransient covers timeouts, connection resets and 5xx responses;
	// fetchers retry these themselves before giving up.
	ErrTransient = errors.New("transient fetch failure")

	// ErrNotFound covers 404/410; at the expected next-page URL it means
	// the archive ran out, anywhere else it is a broken link.
	ErrNotFound = errors.New("document not found")

	// ErrPermanent covers the remaining 4xx responses; never retried.
	ErrPermanent = errors.New("permanent fetch failure")
)

// Fetcher retrieves the raw HTML of a single URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RecordStore persists records in walk order, keyed by document URL.
type RecordStore interface {
	Save(ctx context.Context, record domain.Record) error
	All(ctx context.Context, source string) ([]domain.Record, error)
	Count(ctx context.Context, source string) (int, error)
}

// Publisher uploads a finished dataset to a remote dataset repository.
type Publisher interface {
	Publish(ctx context.Context, repoName string, records []domain.Record) error
}

// Notifier delivers the final run summary to an out-of-band channel.
type Notifier interface {
	NotifySummary(ctx context.Context, message string) error
}
