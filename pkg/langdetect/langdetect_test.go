package langdetect

import (
	"context"
	"testing"

	"github.com/dtnitsch/readmoo-summary/models"
)

func TestNewLingua_Validation(t *testing.T) {
	tests := []struct {
		name    string
		codes   []string
		wantErr bool
	}{
		{"two languages", []string{"en", "zh"}, false},
		{"case and spaces", []string{" EN", "Ja "}, false},
		{"single language", []string{"en"}, true},
		{"duplicates collapse", []string{"en", "EN"}, true},
		{"unknown code", []string{"en", "xx"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLingua(tt.codes)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLingua(%v) error = %v, wantErr %v", tt.codes, err, tt.wantErr)
			}
		})
	}
}

func TestLingua_Detect(t *testing.T) {
	l, err := NewLingua([]string{"en", "zh", "ja"})
	if err != nil {
		t.Fatalf("NewLingua() error = %v", err)
	}
	ctx := context.Background()

	avail, _ := l.Availability(ctx)
	if avail != models.Downloadable {
		t.Errorf("Availability() before Create = %q, want %q", avail, models.Downloadable)
	}

	d, err := l.Create(ctx)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	avail, _ = l.Availability(ctx)
	if avail != models.Available {
		t.Errorf("Availability() after Create = %q, want %q", avail, models.Available)
	}

	tests := []struct {
		text string
		want string
	}{
		{"The quick brown fox jumps over the lazy dog while the reader turns the page.", "en"},
		{"這是一本關於歷史與文化的書，作者在書中描述了許多有趣的故事。", "zh"},
	}
	for _, tt := range tests {
		got, err := d.Detect(ctx, tt.text)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if len(got) == 0 {
			t.Fatalf("Detect(%q) returned no candidates", tt.text)
		}
		if got[0].Language != tt.want {
			t.Errorf("Detect(%q)[0] = %q, want %q", tt.text, got[0].Language, tt.want)
		}
	}
}
