package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/readmoo-summary/models"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	doc := models.SavedSummary{ID: "a1", BookTitle: "Dune", Summary: "Spice."}

	tests := []struct {
		name    string
		path    string
		format  string
		wantErr bool
	}{
		{"json file", filepath.Join(dir, "out.json"), "json", false},
		{"yaml file", filepath.Join(dir, "out.yaml"), "yaml", false},
		{"unknown format", filepath.Join(dir, "out.txt"), "xml", true},
		{"missing directory", filepath.Join(dir, "nope", "out.json"), "json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeFile(tt.path, doc, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("writeFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			info, err := os.Stat(tt.path)
			if err != nil || info.Size() == 0 {
				t.Errorf("writeFile() left %s empty or missing: %v", tt.path, err)
			}
		})
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.json"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var got models.SavedSummary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.ID != "a1" || got.BookTitle != "Dune" {
		t.Errorf("writeFile() json = %+v, want id a1 title Dune", got)
	}
}
