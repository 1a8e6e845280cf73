package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Setting keys as stored in the settings table.
const (
	KeyEnabled           = "enabled"
	KeyAutoSummary       = "autoSummary"
	KeySummaryLength     = "summaryLength"
	KeySummaryLanguage   = "summaryLanguage"
	KeyShowIndicator     = "showIndicator"
	KeyShowNotifications = "showNotifications"
	KeyAutoClear         = "autoClear"
	KeyMinContentLength  = "minContentLength"
	KeyDebugMode         = "debugMode"
)

// Bounds for minContentLength.
const (
	MinContentLengthFloor   = 50
	MinContentLengthCeiling = 1000
)

// Settings is the flat option set shared by every UI surface.
type Settings struct {
	Enabled           bool          `json:"enabled" yaml:"enabled"`
	AutoSummary       bool          `json:"autoSummary" yaml:"autoSummary"`
	SummaryLength     SummaryLength `json:"summaryLength" yaml:"summaryLength"`
	SummaryLanguage   string        `json:"summaryLanguage" yaml:"summaryLanguage"`
	ShowIndicator     bool          `json:"showIndicator" yaml:"showIndicator"`
	ShowNotifications bool          `json:"showNotifications" yaml:"showNotifications"`
	AutoClear         bool          `json:"autoClear" yaml:"autoClear"`
	MinContentLength  int           `json:"minContentLength" yaml:"minContentLength"`
	DebugMode         bool          `json:"debugMode" yaml:"debugMode"`
}

// DefaultSettings is the set written on first install and on reset.
func DefaultSettings() Settings {
	return Settings{
		Enabled:           true,
		AutoSummary:       false,
		SummaryLength:     LengthMedium,
		SummaryLanguage:   "auto",
		ShowIndicator:     true,
		ShowNotifications: true,
		AutoClear:         true,
		MinContentLength:  100,
		DebugMode:         false,
	}
}

// Patch is a partial settings update keyed by setting name.
// Values are raw JSON so numbers may arrive as strings (form inputs).
type Patch map[string]json.RawMessage

// PatchFromStrings builds a Patch from key=value pairs as typed on a command line.
func PatchFromStrings(pairs []string) (Patch, error) {
	p := Patch{}
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, fmt.Errorf("%w: setting %q, want key=value", ErrInvalidRequest, pair)
		}
		raw, _ := json.Marshal(strings.TrimSpace(kv[1]))
		p[strings.TrimSpace(kv[0])] = raw
	}
	return p, nil
}

// Normalize coerces every recognized key to its canonical JSON encoding.
// Unknown keys are an error; values that cannot be coerced are dropped so
// the stored value is kept.
func (p Patch) Normalize() (map[string]string, error) {
	out := make(map[string]string, len(p))
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := p[key]
		var v any
		var ok bool
		switch key {
		case KeyEnabled, KeyAutoSummary, KeyShowIndicator, KeyShowNotifications, KeyAutoClear, KeyDebugMode:
			v, ok = coerceBool(raw)
		case KeySummaryLength:
			var s string
			if s, ok = coerceString(raw); ok {
				var err error
				v, err = ParseSummaryLength(s)
				ok = err == nil
			}
		case KeySummaryLanguage:
			v, ok = coerceString(raw)
		case KeyMinContentLength:
			var n int
			if n, ok = coerceInt(raw); ok {
				v = ClampMinContentLength(n)
			}
		default:
			return nil, fmt.Errorf("%w: unknown setting %q", ErrInvalidRequest, key)
		}
		if !ok {
			continue
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode setting %s: %w", key, err)
		}
		out[key] = string(enc)
	}
	return out, nil
}

// Apply merges one stored key/value into s. Malformed values leave s unchanged.
func (s *Settings) Apply(key, value string) {
	raw := json.RawMessage(value)
	switch key {
	case KeyEnabled:
		applyBool(&s.Enabled, raw)
	case KeyAutoSummary:
		applyBool(&s.AutoSummary, raw)
	case KeyShowIndicator:
		applyBool(&s.ShowIndicator, raw)
	case KeyShowNotifications:
		applyBool(&s.ShowNotifications, raw)
	case KeyAutoClear:
		applyBool(&s.AutoClear, raw)
	case KeyDebugMode:
		applyBool(&s.DebugMode, raw)
	case KeySummaryLength:
		if str, ok := coerceString(raw); ok {
			if l, err := ParseSummaryLength(str); err == nil {
				s.SummaryLength = l
			}
		}
	case KeySummaryLanguage:
		if str, ok := coerceString(raw); ok {
			s.SummaryLanguage = str
		}
	case KeyMinContentLength:
		if n, ok := coerceInt(raw); ok {
			s.MinContentLength = ClampMinContentLength(n)
		}
	}
}

// Entries returns s as stored key/value pairs.
func (s Settings) Entries() map[string]string {
	enc := func(v any) string {
		b, _ := json.Marshal(v)
		return string(b)
	}
	return map[string]string{
		KeyEnabled:           enc(s.Enabled),
		KeyAutoSummary:       enc(s.AutoSummary),
		KeySummaryLength:     enc(s.SummaryLength),
		KeySummaryLanguage:   enc(s.SummaryLanguage),
		KeyShowIndicator:     enc(s.ShowIndicator),
		KeyShowNotifications: enc(s.ShowNotifications),
		KeyAutoClear:         enc(s.AutoClear),
		KeyMinContentLength:  enc(s.MinContentLength),
		KeyDebugMode:         enc(s.DebugMode),
	}
}

// ClampMinContentLength bounds n to [MinContentLengthFloor, MinContentLengthCeiling].
func ClampMinContentLength(n int) int {
	if n < MinContentLengthFloor {
		return MinContentLengthFloor
	}
	if n > MinContentLengthCeiling {
		return MinContentLengthCeiling
	}
	return n
}

func applyBool(dst *bool, raw json.RawMessage) {
	if b, ok := coerceBool(raw); ok {
		*dst = b
	}
}

func coerceBool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	if s, ok := coerceString(raw); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func coerceString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// coerceInt accepts a JSON number or a numeric string, truncating fractions
// the way parseInt does for form input.
func coerceInt(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	s, ok := coerceString(raw)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}
