package summarizer

import (
	"fmt"
	"strings"
)

var typeInstructions = map[string]string{
	TypeKeyPoints: "Extract the key points of the text as a bulleted list.",
	TypeTLDR:      "Write a short, to-the-point overview of the text.",
	TypeTeaser:    "Write an intriguing teaser that makes the reader want to read the text.",
	TypeHeadline:  "Write a single headline capturing the main point of the text.",
}

// lengthGuide follows the host Summarizer API sizing per type.
var lengthGuide = map[string]map[string]string{
	TypeKeyPoints: {"short": "3 bullet points", "medium": "5 bullet points", "long": "7 bullet points"},
	TypeTLDR:      {"short": "1 sentence", "medium": "3 sentences", "long": "5 sentences"},
	TypeTeaser:    {"short": "1 sentence", "medium": "3 sentences", "long": "5 sentences"},
	TypeHeadline:  {"short": "12 words", "medium": "17 words", "long": "22 words"},
}

const promptTemplate = `%s
Length: %s.
%s
%s
Text:
%s`

func buildPrompt(opts Options, text string) string {
	format := "Respond in plain text without markdown."
	if opts.Format == FormatMarkdown {
		format = "Respond in markdown."
	}
	shared := ""
	if opts.SharedContext != "" {
		shared = "Context: " + strings.TrimSpace(opts.SharedContext) + "\n"
	}
	return fmt.Sprintf(promptTemplate,
		typeInstructions[opts.Type],
		lengthGuide[opts.Type][opts.Length],
		format,
		shared,
		text,
	)
}
