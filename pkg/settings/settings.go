// Package settings is the flat key/value option store shared by every UI
// surface. Reads merge stored values over defaults; writes merge per key.
package settings

import (
	"context"
	"fmt"

	"github.com/dtnitsch/readmoo-summary/models"
)

// Backend persists raw setting entries. *db.DB satisfies it.
type Backend interface {
	SettingsEntries(ctx context.Context) (map[string]string, error)
	UpsertSettings(ctx context.Context, entries map[string]string) error
	ReplaceSettings(ctx context.Context, entries map[string]string) error
}

type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get returns stored values merged over DefaultSettings.
func (s *Store) Get(ctx context.Context) (models.Settings, error) {
	entries, err := s.backend.SettingsEntries(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	out := models.DefaultSettings()
	for key, value := range entries {
		out.Apply(key, value)
	}
	return out, nil
}

// Set merges patch into the stored settings. Unknown keys are rejected
// before anything is written.
func (s *Store) Set(ctx context.Context, patch models.Patch) error {
	entries, err := patch.Normalize()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if err := s.backend.UpsertSettings(ctx, entries); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

// Reset clears every stored key and writes the defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.ReplaceSettings(ctx, models.DefaultSettings().Entries()); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

// EnsureDefaults writes defaults for keys that were never stored, the
// equivalent of the install-time initialization.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	entries, err := s.backend.SettingsEntries(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	missing := make(map[string]string)
	for key, value := range models.DefaultSettings().Entries() {
		if _, ok := entries[key]; !ok {
			missing[key] = value
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if err := s.backend.UpsertSettings(ctx, missing); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

// MinContentLength is the extraction threshold read by the coordinator.
func (s *Store) MinContentLength(ctx context.Context) (int, error) {
	cur, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return cur.MinContentLength, nil
}
