// Package summarizer is the external summarization capability. It mirrors
// the host Summarizer API shape (availability, create with options,
// summarize) and fulfils it with an LLM provider over HTTP.
package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/readmoo-summary/models"
)

// Summary types and formats accepted by Create.
const (
	TypeKeyPoints = "key-points"
	TypeTLDR      = "tldr"
	TypeTeaser    = "teaser"
	TypeHeadline  = "headline"

	FormatMarkdown  = "markdown"
	FormatPlainText = "plain-text"
)

// Options configures one summarizer session.
type Options struct {
	Type          string `json:"type"`
	Format        string `json:"format"`
	Length        string `json:"length"`
	SharedContext string `json:"sharedContext,omitempty"`
}

// Session summarizes text with fixed options.
type Session interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Capability is the host-side summarization service.
type Capability interface {
	Availability(ctx context.Context) (models.Availability, error)
	Create(ctx context.Context, opts Options) (Session, error)
}

type provider interface {
	call(ctx context.Context, prompt string) (string, error)
}

// LLM implements Capability on top of a chat-completion provider.
type LLM struct {
	provider provider
}

// New builds the capability for cfg. A missing config or API key yields a
// capability that reports Unavailable rather than an error.
func New(cfg *models.AIConfig, apiKey string) (*LLM, error) {
	if cfg == nil || apiKey == "" {
		return &LLM{}, nil
	}

	client := &http.Client{Timeout: 60 * time.Second}

	switch cfg.Provider {
	case "claude", "":
		model := cfg.Model
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		base := cfg.BaseURL
		if base == "" {
			base = "https://api.anthropic.com"
		}
		return &LLM{provider: &claudeProvider{apiKey: apiKey, model: model, baseURL: base, client: client}}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		base := cfg.BaseURL
		if base == "" {
			base = "https://api.openai.com"
		}
		return &LLM{provider: &openaiProvider{apiKey: apiKey, model: model, baseURL: base, client: client}}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: claude, openai)", cfg.Provider)
	}
}

func (l *LLM) Availability(ctx context.Context) (models.Availability, error) {
	if l.provider == nil {
		return models.Unavailable, nil
	}
	return models.Available, nil
}

func (l *LLM) Create(ctx context.Context, opts Options) (Session, error) {
	if l.provider == nil {
		return nil, fmt.Errorf("%w: summarizer is not configured", models.ErrNotSupported)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &session{provider: l.provider, opts: opts}, nil
}

func (o Options) validate() error {
	switch o.Type {
	case TypeKeyPoints, TypeTLDR, TypeTeaser, TypeHeadline:
	default:
		return fmt.Errorf("unsupported summary type %q", o.Type)
	}
	switch o.Format {
	case FormatMarkdown, FormatPlainText:
	default:
		return fmt.Errorf("unsupported summary format %q", o.Format)
	}
	if l, err := models.ParseSummaryLength(o.Length); err != nil || string(l) != o.Length {
		return fmt.Errorf("unsupported summary length %q", o.Length)
	}
	return nil
}

type session struct {
	provider provider
	opts     Options
}

func (s *session) Summarize(ctx context.Context, text string) (string, error) {
	out, err := s.provider.call(ctx, buildPrompt(s.opts, text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
