package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dtnitsch/readmoo-summary/models"
)

// InsertSavedSummary stores s as the newest entry and evicts everything
// beyond the newest limit entries. It returns the number evicted.
func (db *DB) InsertSavedSummary(ctx context.Context, s models.SavedSummary, limit int) (int64, error) {
	tags, err := json.Marshal(nonNilTags(s.Tags))
	if err != nil {
		return 0, fmt.Errorf("failed to encode tags: %w", err)
	}

	var evicted int64
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO saved_summaries (id, summary, book_title, chapter_title, notes, tags, url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.Summary, s.BookTitle, s.ChapterTitle, s.Notes, string(tags), s.URL, s.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to insert saved summary: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			DELETE FROM saved_summaries
			WHERE seq NOT IN (SELECT seq FROM saved_summaries ORDER BY seq DESC LIMIT ?)
		`, limit)
		if err != nil {
			return fmt.Errorf("failed to evict saved summaries: %w", err)
		}
		evicted, _ = res.RowsAffected()
		return nil
	})
	return evicted, err
}

// ListSavedSummaries returns the archive newest first.
func (db *DB) ListSavedSummaries(ctx context.Context) ([]models.SavedSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, summary, book_title, chapter_title, notes, tags, url, created_at
		FROM saved_summaries
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.SavedSummary{}
	for rows.Next() {
		s, err := scanSavedSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saved summaries: %w", err)
	}
	return summaries, nil
}

// GetSavedSummary returns one entry, or nil when id is unknown.
func (db *DB) GetSavedSummary(ctx context.Context, id string) (*models.SavedSummary, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, summary, book_title, chapter_title, notes, tags, url, created_at
		FROM saved_summaries
		WHERE id = ?
	`, id)
	s, err := scanSavedSummary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSavedSummary removes one entry and reports whether it existed.
func (db *DB) DeleteSavedSummary(ctx context.Context, id string) (bool, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM saved_summaries WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete saved summary: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ClearSavedSummaries removes the whole archive.
func (db *DB) ClearSavedSummaries(ctx context.Context) (int64, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM saved_summaries")
	if err != nil {
		return 0, fmt.Errorf("failed to clear saved summaries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedSummary(r rowScanner) (models.SavedSummary, error) {
	var s models.SavedSummary
	var tags string
	var createdAt int64
	if err := r.Scan(&s.ID, &s.Summary, &s.BookTitle, &s.ChapterTitle, &s.Notes, &tags, &s.URL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return s, err
		}
		return s, fmt.Errorf("failed to scan saved summary: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return s, fmt.Errorf("failed to decode tags for %s: %w", s.ID, err)
	}
	s.Tags = nonNilTags(s.Tags)
	s.CreatedAt = time.UnixMilli(createdAt).UTC()
	return s, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
