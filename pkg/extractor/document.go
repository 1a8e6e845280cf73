package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/readmoo-summary/models"
)

// DefaultSelectors is the container precedence for reader pages, most
// specific first. Order is significant.
var DefaultSelectors = []string{
	".reader-content",
	".book-content",
	".chapter-content",
	"article",
	".content",
	".main-content",
	".post-content",
	"main",
	".entry-content",
	".article-content",
}

// BodySelector is reported when no listed selector matched.
const BodySelector = "body"

// FromDocument returns the first selector match whose trimmed text is longer
// than minLength runes, falling back to the whole body.
func FromDocument(doc *goquery.Document, selectors []string, minLength int) models.ExtractedContent {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(el.Text())
		if utf8.RuneCountInString(text) > minLength {
			inner, _ := el.Html()
			return models.ExtractedContent{
				Text:            text,
				HTML:            inner,
				MatchedSelector: sel,
			}
		}
	}

	body := doc.Find(BodySelector).First()
	inner, _ := body.Html()
	return models.ExtractedContent{
		Text:            strings.TrimSpace(body.Text()),
		HTML:            inner,
		MatchedSelector: BodySelector,
	}
}

// FromHTML parses raw markup and runs FromDocument over it.
func FromHTML(raw string, selectors []string, minLength int) (models.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return models.ExtractedContent{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return FromDocument(doc, selectors, minLength), nil
}
