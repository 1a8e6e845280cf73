// Package archive keeps the user's saved summaries: newest first, capped
// at models.MaxSavedSummaries.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/google/uuid"
)

// Backend is the local store for archive entries. *db.DB satisfies it.
type Backend interface {
	InsertSavedSummary(ctx context.Context, s models.SavedSummary, limit int) (int64, error)
	ListSavedSummaries(ctx context.Context) ([]models.SavedSummary, error)
	GetSavedSummary(ctx context.Context, id string) (*models.SavedSummary, error)
	DeleteSavedSummary(ctx context.Context, id string) (bool, error)
	ClearSavedSummaries(ctx context.Context) (int64, error)
}

type Archive struct {
	backend Backend
	now     func() time.Time
}

func New(backend Backend) *Archive {
	return &Archive{backend: backend, now: time.Now}
}

// Save stores s at the head of the archive, assigning an ID and creation
// time when they are missing. Entries beyond the cap are evicted.
func (a *Archive) Save(ctx context.Context, s models.SavedSummary) (models.SavedSummary, error) {
	s.Summary = strings.TrimSpace(s.Summary)
	if s.Summary == "" {
		return models.SavedSummary{}, fmt.Errorf("%w: summary text is empty", models.ErrNoContent)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	} else {
		existing, err := a.backend.GetSavedSummary(ctx, s.ID)
		if err != nil {
			return models.SavedSummary{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		if existing != nil {
			return models.SavedSummary{}, fmt.Errorf("%w: saved summary %q already exists", models.ErrInvalidRequest, s.ID)
		}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = a.now()
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}

	evicted, err := a.backend.InsertSavedSummary(ctx, s, models.MaxSavedSummaries)
	if err != nil {
		return models.SavedSummary{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if evicted > 0 {
		slog.Debug("Evicted oldest saved summaries", "count", evicted)
	}
	return s, nil
}

func (a *Archive) List(ctx context.Context) ([]models.SavedSummary, error) {
	list, err := a.backend.ListSavedSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if list == nil {
		list = []models.SavedSummary{}
	}
	return list, nil
}

// Get returns the entry with id, or nil when there is none.
func (a *Archive) Get(ctx context.Context, id string) (*models.SavedSummary, error) {
	s, err := a.backend.GetSavedSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return s, nil
}

// Delete removes the entry with id and reports whether it existed.
func (a *Archive) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := a.backend.DeleteSavedSummary(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return ok, nil
}

// Clear removes every entry and returns how many were removed.
func (a *Archive) Clear(ctx context.Context) (int64, error) {
	n, err := a.backend.ClearSavedSummaries(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return n, nil
}

// Export snapshots the whole archive.
func (a *Archive) Export(ctx context.Context) (models.ArchiveExport, error) {
	list, err := a.List(ctx)
	if err != nil {
		return models.ArchiveExport{}, err
	}
	return models.ArchiveExport{
		ExportDate:     a.now().UTC(),
		TotalSummaries: len(list),
		Summaries:      list,
	}, nil
}

// ParseTags splits a comma separated tag list, trimming blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
