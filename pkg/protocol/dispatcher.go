package protocol

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/extractor"
)

type SummaryService interface {
	Summarize(ctx context.Context, length models.SummaryLength) (string, error)
	LastSummary() (models.SummaryRecord, bool)
	CurrentRequest() (models.PageRequest, bool)
}

type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Set(ctx context.Context, patch models.Patch) error
	Reset(ctx context.Context) error
}

type ArchiveService interface {
	Save(ctx context.Context, s models.SavedSummary) (models.SavedSummary, error)
	List(ctx context.Context) ([]models.SavedSummary, error)
	Get(ctx context.Context, id string) (*models.SavedSummary, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) (int64, error)
	Export(ctx context.Context) (models.ArchiveExport, error)
}

type ObservationFeed interface {
	Observe(obs models.Observation) bool
}

type PageFetcher interface {
	GetHtmlBytes(ctx context.Context, url string) ([]byte, error)
}

// Deps are the services behind the dispatcher. Fetcher is only needed for
// getPageContent by URL.
type Deps struct {
	Summaries SummaryService
	Settings  SettingsService
	Archive   ArchiveService
	Feed      ObservationFeed
	Fetcher   PageFetcher
	Logger    *slog.Logger
}

type Dispatcher struct {
	deps   Deps
	logger *slog.Logger
}

func NewDispatcher(deps Deps) *Dispatcher {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{deps: deps, logger: logger}
}

// Handle runs cmd and always answers with a Response. Failures are carried
// in Response.Error, never returned.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) Response {
	surface, ok := LookupSurface(cmd.Surface)
	if !ok {
		return failure(ErrorNotPermitted, fmt.Sprintf("unknown surface %q", cmd.Surface))
	}

	handler, ok := d.handlers()[cmd.Kind]
	if !ok {
		return failure(ErrorUnknownCommand, fmt.Sprintf("unknown command %q", cmd.Kind))
	}
	if !surface.Allows(cmd.Kind) {
		return failure(ErrorNotPermitted, fmt.Sprintf("surface %s may not issue %s", surface.Name, cmd.Kind))
	}

	resp := handler(ctx, cmd)
	if resp.Error != nil {
		d.logger.Warn("Command failed", "kind", cmd.Kind, "surface", surface.Name, "type", resp.Error.Type, "error", resp.Error.Message)
	} else {
		d.logger.Debug("Command handled", "kind", cmd.Kind, "surface", surface.Name)
	}
	return resp
}

type handlerFunc func(ctx context.Context, cmd Command) Response

func (d *Dispatcher) handlers() map[Kind]handlerFunc {
	return map[Kind]handlerFunc{
		KindSummarize:       d.summarize,
		KindGetSettings:     d.getSettings,
		KindUpdateSettings:  d.updateSettings,
		KindResetSettings:   d.resetSettings,
		KindGetPageContent:  d.getPageContent,
		KindObserveRequest:  d.observeRequest,
		KindGetLastSummary:  d.getLastSummary,
		KindSaveSummary:     d.saveSummary,
		KindListSummaries:   d.listSummaries,
		KindGetSummary:      d.getSummary,
		KindDeleteSummary:   d.deleteSummary,
		KindClearSummaries:  d.clearSummaries,
		KindExportSummaries: d.exportSummaries,
	}
}

func (d *Dispatcher) summarize(ctx context.Context, cmd Command) Response {
	var length models.SummaryLength
	if cmd.Length == "" {
		cur, err := d.deps.Settings.Get(ctx)
		if err != nil {
			return failureFrom(err)
		}
		length = cur.SummaryLength
	} else {
		l, err := models.ParseSummaryLength(cmd.Length)
		if err != nil {
			return failure(ErrorInvalidRequest, err.Error())
		}
		length = l
	}

	text, err := d.deps.Summaries.Summarize(ctx, length)
	if err != nil {
		return failureFrom(err)
	}
	return Response{Success: true, Summary: text}
}

func (d *Dispatcher) getSettings(ctx context.Context, cmd Command) Response {
	cur, err := d.deps.Settings.Get(ctx)
	if err != nil {
		return failureFrom(err)
	}
	return Response{Success: true, Settings: &cur}
}

func (d *Dispatcher) updateSettings(ctx context.Context, cmd Command) Response {
	if len(cmd.Settings) == 0 {
		return failure(ErrorInvalidRequest, "settings patch is empty")
	}
	if err := d.deps.Settings.Set(ctx, cmd.Settings); err != nil {
		return failureFrom(err)
	}
	return d.getSettings(ctx, cmd)
}

func (d *Dispatcher) resetSettings(ctx context.Context, cmd Command) Response {
	if err := d.deps.Settings.Reset(ctx); err != nil {
		return failureFrom(err)
	}
	return d.getSettings(ctx, cmd)
}

// getPageContent runs the live-document extractor over the supplied
// markup, or over the fetched URL when no markup is given.
func (d *Dispatcher) getPageContent(ctx context.Context, cmd Command) Response {
	raw, pageURL := cmd.HTML, cmd.URL
	if raw == "" {
		if pageURL == "" {
			if req, ok := d.deps.Summaries.CurrentRequest(); ok {
				pageURL = req.SourceURL
			}
		}
		if pageURL == "" {
			return failure(ErrorInvalidRequest, "getPageContent needs html or url")
		}
		if d.deps.Fetcher == nil {
			return failureFrom(fmt.Errorf("%w: fetching is not configured", models.ErrNotSupported))
		}
		body, err := d.deps.Fetcher.GetHtmlBytes(ctx, pageURL)
		if err != nil {
			return failureFrom(fmt.Errorf("%w: %w", models.ErrFetch, err))
		}
		raw = string(body)
	}

	cur, err := d.deps.Settings.Get(ctx)
	if err != nil {
		return failureFrom(err)
	}

	content, err := extractor.FromHTML(raw, extractor.DefaultSelectors, cur.MinContentLength)
	if err != nil {
		return failure(ErrorInvalidRequest, err.Error())
	}
	if md, err := extractor.Markdown(content.HTML); err == nil {
		content.Markdown = md
	} else {
		d.logger.Debug("Markdown conversion failed", "error", err)
	}
	if meta, err := extractor.Metadata(raw, pageURL); err == nil {
		content.Title = meta.Title
	}
	return Response{Success: true, Content: &content}
}

func (d *Dispatcher) observeRequest(ctx context.Context, cmd Command) Response {
	if cmd.Observation == nil {
		return failure(ErrorInvalidRequest, "observeRequest needs an observation")
	}
	return Response{Success: true, Recorded: d.deps.Feed.Observe(*cmd.Observation)}
}

func (d *Dispatcher) getLastSummary(ctx context.Context, cmd Command) Response {
	rec, ok := d.deps.Summaries.LastSummary()
	if !ok {
		return Response{Success: true}
	}
	req, hasReq := d.deps.Summaries.CurrentRequest()
	fresh := hasReq && rec.FreshFor(&req)
	return Response{Success: true, Record: &rec, Summary: rec.Text, Fresh: fresh}
}

func (d *Dispatcher) saveSummary(ctx context.Context, cmd Command) Response {
	var s models.SavedSummary
	if cmd.Summary != nil {
		s = *cmd.Summary
	}
	if strings.TrimSpace(s.Summary) == "" {
		rec, ok := d.deps.Summaries.LastSummary()
		if !ok {
			return failureFrom(fmt.Errorf("%w: there is no summary to save", models.ErrNoContent))
		}
		s.Summary = rec.Text
		if s.URL == "" {
			s.URL = rec.SourceURL
		}
	}

	saved, err := d.deps.Archive.Save(ctx, s)
	if err != nil {
		return failureFrom(err)
	}
	return Response{Success: true, Saved: &saved}
}

func (d *Dispatcher) listSummaries(ctx context.Context, cmd Command) Response {
	list, err := d.deps.Archive.List(ctx)
	if err != nil {
		return failureFrom(err)
	}
	return Response{Success: true, Summaries: list, Count: int64(len(list))}
}

// getSummary returns one archive entry in full. A missing ID is an
// invalid request.
func (d *Dispatcher) getSummary(ctx context.Context, cmd Command) Response {
	if cmd.ID == "" {
		return failure(ErrorInvalidRequest, "getSummary needs an id")
	}
	s, err := d.deps.Archive.Get(ctx, cmd.ID)
	if err != nil {
		return failureFrom(err)
	}
	if s == nil {
		return failure(ErrorInvalidRequest, fmt.Sprintf("no saved summary with id %q", cmd.ID))
	}
	return Response{Success: true, Saved: s}
}

func (d *Dispatcher) deleteSummary(ctx context.Context, cmd Command) Response {
	if cmd.ID == "" {
		return failure(ErrorInvalidRequest, "deleteSummary needs an id")
	}
	ok, err := d.deps.Archive.Delete(ctx, cmd.ID)
	if err != nil {
		return failureFrom(err)
	}
	if !ok {
		return Response{Success: true}
	}
	return Response{Success: true, Count: 1}
}

func (d *Dispatcher) clearSummaries(ctx context.Context, cmd Command) Response {
	n, err := d.deps.Archive.Clear(ctx)
	if err != nil {
		return failureFrom(err)
	}
	return Response{Success: true, Count: n}
}

func (d *Dispatcher) exportSummaries(ctx context.Context, cmd Command) Response {
	exp, err := d.deps.Archive.Export(ctx)
	if err != nil {
		return failureFrom(err)
	}
	return Response{Success: true, Export: &exp}
}
