package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SettingsEntries returns every stored setting as key -> JSON value.
func (db *DB) SettingsEntries(ctx context.Context) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		entries[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return entries, nil
}

// UpsertSettings writes the given keys, leaving other keys untouched.
func (db *DB) UpsertSettings(ctx context.Context, entries map[string]string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return upsertSettings(ctx, tx, entries)
	})
}

// ReplaceSettings clears the settings table and writes entries.
func (db *DB) ReplaceSettings(ctx context.Context, entries map[string]string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM settings"); err != nil {
			return fmt.Errorf("failed to clear settings: %w", err)
		}
		return upsertSettings(ctx, tx, entries)
	})
}

func upsertSettings(ctx context.Context, tx *sql.Tx, entries map[string]string) error {
	now := time.Now().UnixMilli()
	for key, value := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success.
func (db *DB) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback() // fn error is the one worth reporting
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
