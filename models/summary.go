package models

import (
	"fmt"
	"strings"
	"time"
)

// SummaryLength is the requested size of a key-points summary.
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

// ParseSummaryLength accepts short, medium or long (case-insensitive).
func ParseSummaryLength(s string) (SummaryLength, error) {
	switch l := SummaryLength(strings.ToLower(strings.TrimSpace(s))); l {
	case LengthShort, LengthMedium, LengthLong:
		return l, nil
	default:
		return "", fmt.Errorf("invalid summary length %q (valid: short, medium, long)", s)
	}
}

// PageRequest is the most recent qualifying fetch observed for the active document.
type PageRequest struct {
	SourceURL  string    `json:"source_url"`
	ObservedAt time.Time `json:"observed_at"`
}

// SummaryRecord is the most recently computed summary and the source it belongs to.
type SummaryRecord struct {
	SourceURL string    `json:"source_url" yaml:"source_url"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// FreshFor reports whether the record was computed for the given request.
func (r *SummaryRecord) FreshFor(req *PageRequest) bool {
	return r != nil && req != nil && r.SourceURL == req.SourceURL
}

// ExtractedContent is the result of one extraction pass.
type ExtractedContent struct {
	Text            string `json:"text"`
	HTML            string `json:"html"`
	MatchedSelector string `json:"matched_selector"`
	Title           string `json:"title,omitempty"`
	Markdown        string `json:"markdown,omitempty"`
}

// PageMeta is article metadata derived by readability.
type PageMeta struct {
	Title    string `json:"title,omitempty"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}
