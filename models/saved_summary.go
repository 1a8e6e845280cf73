package models

import "time"

// MaxSavedSummaries caps the archive; the oldest entries are evicted first.
const MaxSavedSummaries = 100

// SavedSummary is a user-curated archive entry.
type SavedSummary struct {
	ID           string    `json:"id" yaml:"id"`
	Summary      string    `json:"summary" yaml:"summary"`
	BookTitle    string    `json:"bookTitle" yaml:"bookTitle"`
	ChapterTitle string    `json:"chapterTitle" yaml:"chapterTitle"`
	Notes        string    `json:"notes" yaml:"notes"`
	Tags         []string  `json:"tags" yaml:"tags"`
	URL          string    `json:"url" yaml:"url"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// ArchiveExport is the document produced by an archive export.
type ArchiveExport struct {
	ExportDate     time.Time      `json:"exportDate" yaml:"exportDate"`
	TotalSummaries int            `json:"totalSummaries" yaml:"totalSummaries"`
	Summaries      []SavedSummary `json:"summaries" yaml:"summaries"`
}
