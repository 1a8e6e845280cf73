package protocol

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/archive"
	"github.com/dtnitsch/readmoo-summary/pkg/db"
	"github.com/dtnitsch/readmoo-summary/pkg/observer"
	"github.com/dtnitsch/readmoo-summary/pkg/settings"
)

type stubSummaries struct {
	request *models.PageRequest
	record  *models.SummaryRecord
	err     error
	lengths []models.SummaryLength
}

func (s *stubSummaries) Summarize(ctx context.Context, length models.SummaryLength) (string, error) {
	s.lengths = append(s.lengths, length)
	if s.err != nil {
		return "", s.err
	}
	return "- " + string(length), nil
}

func (s *stubSummaries) LastSummary() (models.SummaryRecord, bool) {
	if s.record == nil {
		return models.SummaryRecord{}, false
	}
	return *s.record, true
}

func (s *stubSummaries) CurrentRequest() (models.PageRequest, bool) {
	if s.request == nil {
		return models.PageRequest{}, false
	}
	return *s.request, true
}

func (s *stubSummaries) RecordObservedRequest(u string) {
	s.request = &models.PageRequest{SourceURL: u}
}

func setupDispatcher(t *testing.T) (*Dispatcher, *stubSummaries) {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	sums := &stubSummaries{}
	d := NewDispatcher(Deps{
		Summaries: sums,
		Settings:  settings.NewStore(database),
		Archive:   archive.New(database),
		Feed:      observer.NewFeed(sums, nil),
	})
	return d, sums
}

func TestHandle_UnknownCommand(t *testing.T) {
	d, _ := setupDispatcher(t)
	resp := d.Handle(context.Background(), Command{Kind: "explode"})
	if resp.Success || resp.Error == nil || resp.Error.Type != ErrorUnknownCommand {
		t.Errorf("Handle() = %+v, want unknown_command", resp)
	}
}

func TestHandle_SurfacePermissions(t *testing.T) {
	tests := []struct {
		surface string
		kind    Kind
		allowed bool
	}{
		{SurfacePopup, KindSummarize, true},
		{SurfacePopup, KindResetSettings, false},
		{SurfaceOptions, KindUpdateSettings, true},
		{SurfaceOptions, KindSummarize, false},
		{SurfaceContent, KindObserveRequest, true},
		{SurfaceContent, KindClearSummaries, false},
		{SurfaceCLI, KindClearSummaries, true},
		{SurfaceOptions, KindGetSummary, true},
		{SurfacePopup, KindGetSummary, false},
		{"", KindExportSummaries, true},
		{"sidebar", KindGetSettings, false},
	}

	for _, tt := range tests {
		t.Run(tt.surface+"/"+string(tt.kind), func(t *testing.T) {
			d, _ := setupDispatcher(t)
			resp := d.Handle(context.Background(), Command{Kind: tt.kind, Surface: tt.surface})
			denied := resp.Error != nil && resp.Error.Type == ErrorNotPermitted
			if denied == tt.allowed {
				t.Errorf("Handle(%s from %q) = %+v, allowed = %v", tt.kind, tt.surface, resp, tt.allowed)
			}
		})
	}
}

func TestSurface_Commands(t *testing.T) {
	s, ok := LookupSurface(SurfaceCLI)
	if !ok {
		t.Fatal("LookupSurface(cli) not found")
	}
	if got, want := len(s.Commands()), len(Kinds()); got != want {
		t.Errorf("cli commands = %d, want %d", got, want)
	}
}

func TestHandle_Summarize(t *testing.T) {
	d, sums := setupDispatcher(t)
	ctx := context.Background()

	resp := d.Handle(ctx, Command{Kind: KindSummarize, Length: "short"})
	if !resp.Success || resp.Summary != "- short" {
		t.Errorf("Handle(summarize short) = %+v", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindSummarize})
	if !resp.Success || resp.Summary != "- medium" {
		t.Errorf("Handle(summarize default) = %+v, want settings length", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindSummarize, Length: "epic"})
	if resp.Error == nil || resp.Error.Type != ErrorInvalidRequest {
		t.Errorf("Handle(summarize epic) = %+v, want invalid_request", resp)
	}
	if len(sums.lengths) != 2 {
		t.Errorf("summarize calls = %d, want 2", len(sums.lengths))
	}
}

func TestHandle_SummarizeErrorTypes(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{models.ErrNotSupported, "not_supported"},
		{models.ErrFetch, "fetch_error"},
		{models.ErrNoContent, "no_content"},
		{models.ErrTrackingContent, "tracking_content"},
		{models.ErrBusy, "busy"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, sums := setupDispatcher(t)
			sums.err = tt.err
			resp := d.Handle(context.Background(), Command{Kind: KindSummarize, Length: "medium"})
			if resp.Success || resp.Error == nil || resp.Error.Type != tt.want {
				t.Errorf("Handle() = %+v, want error type %s", resp, tt.want)
			}
		})
	}
}

func TestHandle_Settings(t *testing.T) {
	d, _ := setupDispatcher(t)
	ctx := context.Background()

	resp := d.Handle(ctx, Command{
		Kind:     KindUpdateSettings,
		Surface:  SurfaceOptions,
		Settings: models.Patch{"summaryLength": json.RawMessage(`"long"`)},
	})
	if !resp.Success || resp.Settings == nil {
		t.Fatalf("Handle(updateSettings) = %+v", resp)
	}
	want := models.DefaultSettings()
	want.SummaryLength = models.LengthLong
	if *resp.Settings != want {
		t.Errorf("settings = %+v, want %+v", *resp.Settings, want)
	}

	resp = d.Handle(ctx, Command{
		Kind:     KindUpdateSettings,
		Settings: models.Patch{"theme": json.RawMessage(`"dark"`)},
	})
	if resp.Error == nil || resp.Error.Type != ErrorInvalidRequest {
		t.Errorf("Handle(updateSettings unknown key) = %+v, want invalid_request", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindResetSettings})
	if !resp.Success || *resp.Settings != models.DefaultSettings() {
		t.Errorf("Handle(resetSettings) = %+v, want defaults", resp)
	}
}

func TestHandle_GetPageContent(t *testing.T) {
	d, _ := setupDispatcher(t)
	body := strings.Repeat("She turned the page and the ink rearranged itself. ", 5)
	html := `<html><head><title>Chapter 7</title></head><body>
		<article><p>` + body + `</p></article>
		<div class="reader-content"><p>` + body + `</p></div>
	</body></html>`

	resp := d.Handle(context.Background(), Command{Kind: KindGetPageContent, HTML: html})
	if !resp.Success || resp.Content == nil {
		t.Fatalf("Handle(getPageContent) = %+v", resp)
	}
	if got, want := resp.Content.MatchedSelector, ".reader-content"; got != want {
		t.Errorf("MatchedSelector = %q, want %q", got, want)
	}
	if !strings.Contains(resp.Content.Markdown, "ink rearranged") {
		t.Errorf("Markdown = %q, want converted paragraph", resp.Content.Markdown)
	}

	resp = d.Handle(context.Background(), Command{Kind: KindGetPageContent})
	if resp.Error == nil || resp.Error.Type != ErrorInvalidRequest {
		t.Errorf("Handle(getPageContent empty) = %+v, want invalid_request", resp)
	}
}

func TestHandle_ObserveAndLastSummary(t *testing.T) {
	d, sums := setupDispatcher(t)
	ctx := context.Background()
	page := "https://reader.readmoo.com/e/abc/p-12.xhtml"

	resp := d.Handle(ctx, Command{
		Kind:        KindObserveRequest,
		Surface:     SurfaceContent,
		Observation: &models.Observation{URL: page, StatusCode: 200, DocumentID: "doc"},
	})
	if !resp.Success || !resp.Recorded {
		t.Fatalf("Handle(observeRequest) = %+v", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindGetLastSummary})
	if !resp.Success || resp.Record != nil {
		t.Errorf("Handle(getLastSummary) with no record = %+v", resp)
	}

	sums.record = &models.SummaryRecord{SourceURL: page, Text: "- cached"}
	resp = d.Handle(ctx, Command{Kind: KindGetLastSummary})
	if !resp.Fresh || resp.Summary != "- cached" {
		t.Errorf("Handle(getLastSummary) = %+v, want fresh cached", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindObserveRequest})
	if resp.Error == nil || resp.Error.Type != ErrorInvalidRequest {
		t.Errorf("Handle(observeRequest without payload) = %+v", resp)
	}
}

func TestHandle_Archive(t *testing.T) {
	d, sums := setupDispatcher(t)
	ctx := context.Background()

	resp := d.Handle(ctx, Command{Kind: KindSaveSummary, Surface: SurfacePopup})
	if resp.Error == nil || resp.Error.Type != "no_content" {
		t.Errorf("Handle(saveSummary) with nothing to save = %+v", resp)
	}

	sums.record = &models.SummaryRecord{SourceURL: "https://reader.readmoo.com/e/a/p-1.xhtml", Text: "- point"}
	resp = d.Handle(ctx, Command{
		Kind:    KindSaveSummary,
		Surface: SurfacePopup,
		Summary: &models.SavedSummary{BookTitle: "Dune", Tags: []string{"scifi"}},
	})
	if !resp.Success || resp.Saved == nil {
		t.Fatalf("Handle(saveSummary) = %+v", resp)
	}
	if resp.Saved.Summary != "- point" || resp.Saved.URL != sums.record.SourceURL {
		t.Errorf("saved = %+v, want last summary text and url", resp.Saved)
	}
	id := resp.Saved.ID

	resp = d.Handle(ctx, Command{Kind: KindListSummaries})
	if len(resp.Summaries) != 1 || resp.Summaries[0].ID != id {
		t.Errorf("Handle(listSummaries) = %+v", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindExportSummaries})
	if resp.Export == nil || resp.Export.TotalSummaries != 1 {
		t.Errorf("Handle(exportSummaries) = %+v", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindGetSummary, Surface: SurfaceOptions, ID: id})
	if !resp.Success || resp.Saved == nil || resp.Saved.BookTitle != "Dune" {
		t.Errorf("Handle(getSummary) = %+v, want saved entry", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindDeleteSummary, ID: id})
	if !resp.Success || resp.Count != 1 {
		t.Errorf("Handle(deleteSummary) = %+v", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindDeleteSummary})
	if resp.Error == nil || resp.Error.Type != ErrorInvalidRequest {
		t.Errorf("Handle(deleteSummary without id) = %+v", resp)
	}

	resp = d.Handle(ctx, Command{Kind: KindClearSummaries})
	if !resp.Success || resp.Count != 0 {
		t.Errorf("Handle(clearSummaries) = %+v", resp)
	}
}

func TestHandle_GetSummaryMissing(t *testing.T) {
	d, _ := setupDispatcher(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
	}{
		{"unknown id", "no-such-id"},
		{"empty id", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Handle(ctx, Command{Kind: KindGetSummary, ID: tt.id})
			if resp.Success || resp.Error == nil || resp.Error.Type != ErrorInvalidRequest {
				t.Errorf("Handle(getSummary %q) = %+v, want invalid_request", tt.id, resp)
			}
		})
	}
}
