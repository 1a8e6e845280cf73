package extractor

import (
	"strings"
	"testing"
)

func TestMetadata(t *testing.T) {
	para := strings.Repeat("The archivist walked the stacks at dawn, counting the spines twice over. ", 8)
	raw := `<html><head><title>第三章 The Archive</title><meta name="author" content="Lin Wei"></head>
<body><article><h1>第三章 The Archive</h1><p>` + para + `</p><p>` + para + `</p></article></body></html>`

	meta, err := Metadata(raw, "https://reader.readmoo.com/e/abc/p-3.xhtml")
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if !strings.Contains(meta.Title, "The Archive") {
		t.Errorf("Title = %q, want it to contain %q", meta.Title, "The Archive")
	}
}

func TestMetadata_BadURL(t *testing.T) {
	if _, err := Metadata("<html></html>", "://bad"); err == nil {
		t.Error("Metadata() with malformed URL should fail")
	}
}

func TestNormalizeText(t *testing.T) {
	if got, want := normalizeText("  Chapter\n\n   Three  \n"), "Chapter Three"; got != want {
		t.Errorf("normalizeText() = %q, want %q", got, want)
	}
}
