// Package extractor turns reader markup into plain text. It covers the two
// extraction paths: raw markup fetched by the worker, and a parsed page
// walked with a prioritized selector list.
package extractor

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// markupPolicy removes every tag. script and style elements are dropped
// together with their content.
var markupPolicy = newMarkupPolicy()

// selfClosingRawText matches XHTML self-closing raw-text elements such as
// <title/> or <script src="a.js"/>. An HTML tokenizer ignores the slash and
// would read the rest of the document as element text.
var selfClosingRawText = regexp.MustCompile(`(?i)<(script|style|title|textarea|noscript|iframe|xmp|noembed|noframes)\b([^>]*?)/>`)

func newMarkupPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// FromMarkup strips script/style content and tags from raw markup, decodes
// entities and collapses whitespace. It never fails; the result may be empty.
func FromMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	raw = selfClosingRawText.ReplaceAllString(raw, "<$1$2></$1>")
	text := markupPolicy.Sanitize(raw)
	text = html.UnescapeString(text)
	return collapseWhitespace(text)
}

// collapseWhitespace folds every whitespace run (newlines and NBSP included)
// into a single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
