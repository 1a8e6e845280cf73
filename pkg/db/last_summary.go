package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dtnitsch/readmoo-summary/models"
)

// SaveLastSummary overwrites the single last-summary slot.
func (db *DB) SaveLastSummary(ctx context.Context, rec models.SummaryRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO last_summary (slot, source_url, text, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			source_url = excluded.source_url,
			text = excluded.text,
			created_at = excluded.created_at
	`, rec.SourceURL, rec.Text, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save last summary: %w", err)
	}
	return nil
}

// LastSummary returns the stored slot, or nil when nothing was saved yet.
func (db *DB) LastSummary(ctx context.Context) (*models.SummaryRecord, error) {
	var rec models.SummaryRecord
	var createdAt int64
	err := db.QueryRowContext(ctx, "SELECT source_url, text, created_at FROM last_summary WHERE slot = 1").
		Scan(&rec.SourceURL, &rec.Text, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last summary: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}
