// Package coordinator owns the active page request and the last computed
// summary, and runs one summarization at a time.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/extractor"
	"github.com/dtnitsch/readmoo-summary/pkg/filter"
	"github.com/dtnitsch/readmoo-summary/pkg/langdetect"
	"github.com/dtnitsch/readmoo-summary/pkg/summarizer"
)

// MaxInputRunes is the largest text handed to the summarizer.
const MaxInputRunes = 4000

// TruncationMarker is appended to text cut at MaxInputRunes.
const TruncationMarker = "..."

// Fetcher retrieves a source document. *fetcher.Fetcher satisfies it.
type Fetcher interface {
	GetHtmlBytes(ctx context.Context, url string) ([]byte, error)
}

// SettingsReader supplies the extraction threshold.
type SettingsReader interface {
	MinContentLength(ctx context.Context) (int, error)
}

// RecordStore persists the last summary so it survives restarts.
type RecordStore interface {
	SaveLastSummary(ctx context.Context, rec models.SummaryRecord) error
}

// Config wires the coordinator's collaborators. Store and Logger are optional.
type Config struct {
	Fetcher    Fetcher
	Summarizer summarizer.Capability
	Detector   langdetect.Capability
	Settings   SettingsReader
	Store      RecordStore
	Logger     *slog.Logger
}

type Coordinator struct {
	fetcher    Fetcher
	summarizer summarizer.Capability
	detector   langdetect.Capability
	settings   SettingsReader
	store      RecordStore
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	request  *models.PageRequest
	record   *models.SummaryRecord
	inFlight atomic.Bool
}

func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		fetcher:    cfg.Fetcher,
		summarizer: cfg.Summarizer,
		detector:   cfg.Detector,
		settings:   cfg.Settings,
		store:      cfg.Store,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordObservedRequest makes sourceURL the active source document. It
// never starts a summarization.
func (c *Coordinator) RecordObservedRequest(sourceURL string) {
	c.mu.Lock()
	c.request = &models.PageRequest{SourceURL: sourceURL, ObservedAt: c.now()}
	c.mu.Unlock()
}

// CurrentRequest returns the active page request, if any.
func (c *Coordinator) CurrentRequest() (models.PageRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.request == nil {
		return models.PageRequest{}, false
	}
	return *c.request, true
}

// LastSummary returns the most recent summary, fresh or not.
func (c *Coordinator) LastSummary() (models.SummaryRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return models.SummaryRecord{}, false
	}
	return *c.record, true
}

// Restore installs a persisted record at startup. A record already
// computed by this process wins.
func (c *Coordinator) Restore(rec models.SummaryRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		c.record = &rec
	}
}

// Summarize returns a key-points summary of the active source document.
// A fresh cached summary is returned without fetching. Failures leave
// the cached summary untouched.
func (c *Coordinator) Summarize(ctx context.Context, length models.SummaryLength) (string, error) {
	if err := c.checkSupport(ctx); err != nil {
		return "", err
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return "", models.ErrBusy
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	var req models.PageRequest
	hasRequest := c.request != nil
	if hasRequest {
		req = *c.request
	}
	if hasRequest && c.record.FreshFor(&req) {
		text := c.record.Text
		c.mu.Unlock()
		c.logger.Debug("Returning cached summary", "url", req.SourceURL)
		return text, nil
	}
	c.mu.Unlock()

	if !hasRequest {
		return "", fmt.Errorf("%w: no reader page has been observed yet", models.ErrNoContent)
	}

	text, err := c.extract(ctx, req.SourceURL)
	if err != nil {
		return "", err
	}

	lang, err := c.detectLanguage(ctx, text)
	if err != nil {
		return "", err
	}

	session, err := c.summarizer.Create(ctx, summarizer.Options{
		Type:          summarizer.TypeKeyPoints,
		Format:        summarizer.FormatMarkdown,
		Length:        string(length),
		SharedContext: "Please reply with language " + lang,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create summarizer: %w", err)
	}

	summary, err := session.Summarize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to summarize: %w", err)
	}

	rec := models.SummaryRecord{SourceURL: req.SourceURL, Text: summary, CreatedAt: c.now()}
	c.mu.Lock()
	c.record = &rec
	c.mu.Unlock()

	c.logger.Info("Summarized page", "url", req.SourceURL, "language", lang, "length", string(length))

	if c.store != nil {
		if err := c.store.SaveLastSummary(ctx, rec); err != nil {
			c.logger.Warn("Failed to persist last summary", "error", err)
		}
	}
	return summary, nil
}

func (c *Coordinator) checkSupport(ctx context.Context) error {
	if c.summarizer == nil || c.detector == nil {
		return fmt.Errorf("%w: summarizer or language detector is missing", models.ErrNotSupported)
	}
	if a, err := c.summarizer.Availability(ctx); err != nil || a == models.Unavailable {
		return fmt.Errorf("%w: summarizer is unavailable", models.ErrNotSupported)
	}
	if a, err := c.detector.Availability(ctx); err != nil || a == models.Unavailable {
		return fmt.Errorf("%w: language detector is unavailable", models.ErrNotSupported)
	}
	return nil
}

// extract fetches sourceURL and returns its text, truncated for the
// summarizer.
func (c *Coordinator) extract(ctx context.Context, sourceURL string) (string, error) {
	body, err := c.fetcher.GetHtmlBytes(ctx, sourceURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrFetch, err)
	}

	text := extractor.FromMarkup(string(body))

	minLength, err := c.settings.MinContentLength(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrStorage) {
			err = fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		return "", err
	}
	if n := utf8.RuneCountInString(text); n < minLength {
		return "", fmt.Errorf("%w: extracted %d characters, need %d", models.ErrNoContent, n, minLength)
	}

	if filter.IsTrackingContent(text) {
		return "", models.ErrTrackingContent
	}

	return Truncate(text, MaxInputRunes), nil
}

func (c *Coordinator) detectLanguage(ctx context.Context, text string) (string, error) {
	detector, err := c.detector.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrNotSupported, err)
	}
	detections, err := detector.Detect(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to detect language: %w", err)
	}
	if len(detections) == 0 {
		return "", fmt.Errorf("%w: language detector returned no result", models.ErrNotSupported)
	}
	return detections[0].Language, nil
}

// Truncate cuts text to max runes, appending TruncationMarker when it cut.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + TruncationMarker
}
