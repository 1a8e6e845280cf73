package help

const ColdstartYAML = `# readmoo-summary Quick Start

worker:
  start: |
    readmoo-summary serve
  report_page: |
    readmoo-summary observe --url "https://reader.readmoo.com/e/<book>/OEBPS/p-12.xhtml" --document-id tab-1
  summarize_active_page: |
    readmoo-summary summarize --server http://127.0.0.1:8765 --length short

one_shot:
  summarize_url: |
    readmoo-summary summarize --url "https://reader.readmoo.com/e/<book>/OEBPS/p-12.xhtml"
  extract_file: |
    readmoo-summary extract --file chapter.html --fields text,matched_selector
  flattened_text: |
    readmoo-summary extract --url "https://reader.readmoo.com/e/<book>/OEBPS/p-12.xhtml" --markup

settings:
  show: readmoo-summary settings get
  change: readmoo-summary settings set summaryLength=long minContentLength=200
  reset: readmoo-summary settings reset

archive:
  save_last: readmoo-summary archive save --book "Book" --chapter "Chapter 3" --tags "fantasy,notes"
  list: readmoo-summary archive list
  export: readmoo-summary archive export --format json -o summaries.json
  delete: readmoo-summary archive delete <id>

summary_lengths:
  short: "3 key points"
  medium: "5 key points (default)"
  long: "7 key points"

error_types:
  not_supported: "Summarizer or language detector unavailable (configure ai.provider and an API key)"
  fetch_error: "The reader page could not be fetched"
  no_content: "Not enough text on the page, or no page observed yet"
  tracking_content: "Extracted text was analytics boilerplate"
  storage_error: "The database could not be read or written"
  busy: "Another summarization is in progress"

config:
  path: "$XDG_CONFIG_HOME/readmoo-summary/config.yaml"
  example: |
    listen: 127.0.0.1:8765
    fetch_timeout: 30s
    languages: [zh, en, ja, ko]
    ai:
      provider: claude
      model: claude-haiku-4-5-20251001
  api_key_env: READMOO_SUMMARY_AI_KEY
`
