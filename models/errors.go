package models

import "errors"

// Error kinds surfaced to UI surfaces. All are terminal for the request.
var (
	ErrNotSupported    = errors.New("required capability is not supported")
	ErrFetch           = errors.New("failed to fetch source document")
	ErrNoContent       = errors.New("not enough content to summarize")
	ErrTrackingContent = errors.New("content looks like tracking boilerplate")
	ErrStorage         = errors.New("storage failure")
	ErrBusy            = errors.New("a summarization is already in progress")
	ErrInvalidRequest  = errors.New("invalid request")
)

// ErrorType maps an error to the string carried in ErrorInfo.Type.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotSupported):
		return "not_supported"
	case errors.Is(err, ErrFetch):
		return "fetch_error"
	case errors.Is(err, ErrNoContent):
		return "no_content"
	case errors.Is(err, ErrTrackingContent):
		return "tracking_content"
	case errors.Is(err, ErrStorage):
		return "storage_error"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "internal_error"
	}
}
