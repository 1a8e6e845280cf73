package extractor

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Markdown renders an extracted HTML fragment as markdown.
func Markdown(fragment string) (string, error) {
	if fragment == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return md, nil
}
