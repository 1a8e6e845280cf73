// Package observer filters the network-observation feed down to the
// reader document fetches that should become the active page request.
package observer

import (
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/dtnitsch/readmoo-summary/models"
)

// ReaderHost serves the e-reader documents.
const ReaderHost = "reader.readmoo.com"

var pagePattern = regexp.MustCompile(`p-[0-9]+\.xhtml$`)

// Recorder accepts qualifying source URLs. The coordinator satisfies it.
type Recorder interface {
	RecordObservedRequest(sourceURL string)
}

// Qualifies reports whether obs is a successful page fetch issued by a
// reader tab: https or http on the reader host under /e/, a p-<n>.xhtml
// resource, status 200 and an owning document.
func Qualifies(obs models.Observation) bool {
	if obs.StatusCode != http.StatusOK || strings.TrimSpace(obs.DocumentID) == "" {
		return false
	}
	u, err := url.Parse(obs.URL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Hostname() != ReaderHost || !strings.HasPrefix(u.Path, "/e/") {
		return false
	}
	return pagePattern.MatchString(u.Path)
}

type Feed struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewFeed(recorder Recorder, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{recorder: recorder, logger: logger}
}

// Observe forwards obs to the recorder when it qualifies and reports
// whether it did.
func (f *Feed) Observe(obs models.Observation) bool {
	if !Qualifies(obs) {
		f.logger.Debug("Ignoring observation", "url", obs.URL, "status", obs.StatusCode)
		return false
	}
	f.recorder.RecordObservedRequest(obs.URL)
	f.logger.Info("Recorded page request", "url", obs.URL)
	return true
}
