// Package langdetect provides the language-detection capability used to
// hint the summarizer about the reply language.
package langdetect

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/pemistahl/lingua-go"
)

// Detection is one candidate language, ordered by confidence.
type Detection struct {
	Language   string  `json:"detectedLanguage"` // ISO-639-1, lowercase
	Confidence float64 `json:"confidence"`
}

// Detector classifies text.
type Detector interface {
	Detect(ctx context.Context, text string) ([]Detection, error)
}

// Capability is the host-side detection service.
type Capability interface {
	Availability(ctx context.Context) (models.Availability, error)
	Create(ctx context.Context) (Detector, error)
}

// Lingua is a Capability backed by lingua-go n-gram models. Models are
// loaded lazily on the first Create.
type Lingua struct {
	languages []lingua.Language

	once     sync.Once
	loaded   atomic.Bool
	detector lingua.LanguageDetector
}

// NewLingua restricts detection to the given ISO-639-1 codes. lingua needs
// at least two candidate languages.
func NewLingua(codes []string) (*Lingua, error) {
	byCode := make(map[string]lingua.Language)
	for _, lang := range lingua.AllLanguages() {
		byCode[strings.ToLower(lang.IsoCode639_1().String())] = lang
	}

	var langs []lingua.Language
	seen := make(map[lingua.Language]bool)
	for _, code := range codes {
		lang, ok := byCode[strings.ToLower(strings.TrimSpace(code))]
		if !ok {
			return nil, fmt.Errorf("unsupported language code %q", code)
		}
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detection needs at least 2 languages, got %d", len(langs))
	}
	return &Lingua{languages: langs}, nil
}

// Availability reports Downloadable until the models have been loaded.
func (l *Lingua) Availability(ctx context.Context) (models.Availability, error) {
	if len(l.languages) == 0 {
		return models.Unavailable, nil
	}
	if !l.loaded.Load() {
		return models.Downloadable, nil
	}
	return models.Available, nil
}

func (l *Lingua) Create(ctx context.Context) (Detector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.once.Do(func() {
		l.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(l.languages...).
			Build()
		l.loaded.Store(true)
	})
	return &linguaDetector{detector: l.detector}, nil
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

func (d *linguaDetector) Detect(ctx context.Context, text string) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Detection
	for _, cv := range d.detector.ComputeLanguageConfidenceValues(text) {
		if cv.Value() <= 0 {
			continue
		}
		out = append(out, Detection{
			Language:   strings.ToLower(cv.Language().IsoCode639_1().String()),
			Confidence: cv.Value(),
		})
	}
	return out, nil
}
