// Package protocol is the typed command/response boundary between UI
// surfaces and the background worker.
package protocol

import (
	"github.com/dtnitsch/readmoo-summary/models"
)

// Kind names a command.
type Kind string

const (
	KindSummarize       Kind = "summarize"
	KindGetSettings     Kind = "getSettings"
	KindUpdateSettings  Kind = "updateSettings"
	KindResetSettings   Kind = "resetSettings"
	KindGetPageContent  Kind = "getPageContent"
	KindObserveRequest  Kind = "observeRequest"
	KindGetLastSummary  Kind = "getLastSummary"
	KindSaveSummary     Kind = "saveSummary"
	KindListSummaries   Kind = "listSummaries"
	KindGetSummary      Kind = "getSummary"
	KindDeleteSummary   Kind = "deleteSummary"
	KindClearSummaries  Kind = "clearSummaries"
	KindExportSummaries Kind = "exportSummaries"
)

// Kinds lists every command kind the dispatcher handles.
func Kinds() []Kind {
	return []Kind{
		KindSummarize, KindGetSettings, KindUpdateSettings, KindResetSettings,
		KindGetPageContent, KindObserveRequest, KindGetLastSummary,
		KindSaveSummary, KindListSummaries, KindGetSummary, KindDeleteSummary,
		KindClearSummaries, KindExportSummaries,
	}
}

// Command is one request from a surface. Only the payload fields used by
// Kind are read.
type Command struct {
	Kind    Kind   `json:"kind"`
	Surface string `json:"surface,omitempty"`

	// summarize; empty uses the summaryLength setting
	Length string `json:"length,omitempty"`

	// updateSettings
	Settings models.Patch `json:"settings,omitempty"`

	// getPageContent: markup of the live document, or a URL to fetch
	HTML string `json:"html,omitempty"`
	URL  string `json:"url,omitempty"`

	// observeRequest
	Observation *models.Observation `json:"observation,omitempty"`

	// saveSummary; empty Summary text saves the last computed summary
	Summary *models.SavedSummary `json:"summary,omitempty"`

	// getSummary, deleteSummary
	ID string `json:"id,omitempty"`
}

// ErrorInfo is the structured failure carried back to the surface.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error types produced by the dispatcher itself. The remaining types come
// from models.ErrorType.
const (
	ErrorUnknownCommand = "unknown_command"
	ErrorNotPermitted   = "not_permitted"
	ErrorInvalidRequest = "invalid_request"
)

type Response struct {
	Success   bool                     `json:"success"`
	Summary   string                   `json:"summary,omitempty"`
	Settings  *models.Settings         `json:"settings,omitempty"`
	Content   *models.ExtractedContent `json:"content,omitempty"`
	Record    *models.SummaryRecord    `json:"record,omitempty"`
	Fresh     bool                     `json:"fresh,omitempty"`
	Recorded  bool                     `json:"recorded,omitempty"`
	Saved     *models.SavedSummary     `json:"saved,omitempty"`
	Summaries []models.SavedSummary    `json:"summaries,omitempty"`
	Export    *models.ArchiveExport    `json:"export,omitempty"`
	Count     int64                    `json:"count,omitempty"`
	Error     *ErrorInfo               `json:"error,omitempty"`
}

func failure(errType, message string) Response {
	return Response{Error: &ErrorInfo{Type: errType, Message: message}}
}

func failureFrom(err error) Response {
	return failure(models.ErrorType(err), err.Error())
}
