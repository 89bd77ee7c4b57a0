package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver

	"EuroparlScraper/internal/domain"
	"EuroparlScraper/internal/ports"
)

// SQLiteStore keeps collected records in walk order inside a local SQLite
// file. Insertion order is preserved through the autoincrement id, so the
// chronological dataset ordering survives process restarts.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.RecordStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	source TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Open opens or creates the record database at path, creating parent
// directories as needed.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts one record. A re-walked URL keeps its original position, so
// resuming an interrupted walk never reorders the dataset.
func (s *SQLiteStore) Save(ctx context.Context, record domain.Record) error {
	query, args, err := sq.Insert("records").
		Columns("url", "date", "source", "text").
		Values(record.URL, record.Date, record.Source, record.Text).
		Suffix("ON CONFLICT(url) DO UPDATE SET date = excluded.date, text = excluded.text").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save record %s: %w", record.URL, err)
	}

	return nil
}

// All returns every stored record for one source in walk order.
func (s *SQLiteStore) All(ctx context.Context, source string) ([]domain.Record, error) {
	query, args, err := sq.Select("url", "date", "source", "text").
		From("records").
		Where(sq.Eq{"source": source}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	var records []domain.Record
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.URL, &r.Date, &r.Source, &r.Text); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return records, nil
}

// Count reports how many records one source has stored.
func (s *SQLiteStore) Count(ctx context.Context, source string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("records").
		Where(sq.Eq{"source": source}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return count, nil
}
