package db

import (
	"context"
	"testing"
	"time"

	"github.com/dtnitsch/readmoo-summary/models"
)

func TestLastSummary(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	rec, err := db.LastSummary(ctx)
	if err != nil || rec != nil {
		t.Fatalf("LastSummary() on empty db = %v, %v; want nil, nil", rec, err)
	}

	first := models.SummaryRecord{SourceURL: "https://reader.readmoo.com/e/a/p-1.xhtml", Text: "one", CreatedAt: time.UnixMilli(1000).UTC()}
	second := models.SummaryRecord{SourceURL: "https://reader.readmoo.com/e/a/p-2.xhtml", Text: "two", CreatedAt: time.UnixMilli(2000).UTC()}

	for _, r := range []models.SummaryRecord{first, second} {
		if err := db.SaveLastSummary(ctx, r); err != nil {
			t.Fatalf("SaveLastSummary() error = %v", err)
		}
	}

	rec, err = db.LastSummary(ctx)
	if err != nil {
		t.Fatalf("LastSummary() error = %v", err)
	}
	if rec.SourceURL != second.SourceURL || rec.Text != second.Text || !rec.CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("LastSummary() = %+v, want %+v", *rec, second)
	}
}
