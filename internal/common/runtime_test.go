package common

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/db"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
)

func setupTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg, err := models.LoadConfig("testdata/does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	rt, err := newRuntime(context.Background(), cfg, slog.Default(), database)
	if err != nil {
		t.Fatalf("newRuntime() error = %v", err)
	}
	return rt
}

func TestNewRuntime_RestoresLastSummary(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer database.Close()

	rec := models.SummaryRecord{SourceURL: "https://reader.readmoo.com/e/a/p-1.xhtml", Text: "- kept"}
	if err := database.SaveLastSummary(context.Background(), rec); err != nil {
		t.Fatalf("SaveLastSummary() error = %v", err)
	}

	cfg, _ := models.LoadConfig("testdata/does-not-exist.yaml")
	rt, err := newRuntime(context.Background(), cfg, slog.Default(), database)
	if err != nil {
		t.Fatalf("newRuntime() error = %v", err)
	}
	got, ok := rt.Coordinator.LastSummary()
	if !ok || got.Text != "- kept" {
		t.Errorf("LastSummary() = %+v, %v, want restored record", got, ok)
	}
}

func TestNewRuntime_UnconfiguredSummarizer(t *testing.T) {
	t.Setenv(models.APIKeyEnv, "")
	rt := setupTestRuntime(t)
	rt.Coordinator.RecordObservedRequest("https://reader.readmoo.com/e/a/p-1.xhtml")

	resp := rt.Dispatcher.Handle(context.Background(), protocol.Command{Kind: protocol.KindSummarize})
	if resp.Error == nil || resp.Error.Type != "not_supported" {
		t.Errorf("Handle(summarize) = %+v, want not_supported", resp)
	}

	resp = rt.Dispatcher.Handle(context.Background(), protocol.Command{Kind: protocol.KindGetSettings})
	if !resp.Success || *resp.Settings != models.DefaultSettings() {
		t.Errorf("Handle(getSettings) = %+v, want defaults", resp)
	}
}

func TestWriteOutput(t *testing.T) {
	v := map[string]int{"totalSummaries": 2}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, v, "yaml"); err != nil {
		t.Fatalf("WriteOutput(yaml) error = %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "totalSummaries: 2") {
		t.Errorf("yaml output = %q", got)
	}

	buf.Reset()
	if err := WriteOutput(&buf, v, "json"); err != nil {
		t.Fatalf("WriteOutput(json) error = %v", err)
	}
	if got := buf.String(); !strings.Contains(got, `"totalSummaries": 2`) {
		t.Errorf("json output = %q", got)
	}

	if err := WriteOutput(&buf, v, "xml"); err == nil {
		t.Error("WriteOutput(xml) should fail")
	}
}
