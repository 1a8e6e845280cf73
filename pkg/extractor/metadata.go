package extractor

import (
	"bufio"
	"net/url"
	"strings"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/go-shiori/go-readability"
)

// Metadata uses go-readability to pull the article title and byline out of
// a reader page. pageURL resolves relative links and may be empty.
func Metadata(rawHTML, pageURL string) (models.PageMeta, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return models.PageMeta{}, err
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return models.PageMeta{}, err
	}

	return models.PageMeta{
		Title:    normalizeText(article.Title),
		Byline:   normalizeText(article.Byline),
		SiteName: normalizeText(article.SiteName),
		Excerpt:  normalizeText(article.Excerpt),
	}, nil
}

// normalizeText trims each line and joins the non-empty ones with a space.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
