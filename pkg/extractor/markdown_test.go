package extractor

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	md, err := Markdown("<h2>Chapter</h2><p>Some <strong>bold</strong> text</p>")
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(md, "## Chapter") {
		t.Errorf("Markdown() = %q, want heading", md)
	}
	if !strings.Contains(md, "**bold**") {
		t.Errorf("Markdown() = %q, want bold text", md)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	md, err := Markdown("")
	if err != nil || md != "" {
		t.Errorf("Markdown(\"\") = %q, %v; want empty", md, err)
	}
}
