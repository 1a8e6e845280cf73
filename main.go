package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/readmoo-summary/internal/archive"
	"github.com/dtnitsch/readmoo-summary/internal/serve"
	"github.com/dtnitsch/readmoo-summary/internal/settings"
	"github.com/dtnitsch/readmoo-summary/internal/summarize"
	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/help"
	"github.com/urfave/cli/v2"
)

const defaultServer = "http://" + models.DefaultListenAddr

func main() {
	formatFlag := &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: yaml or json",
		Value: "yaml",
	}

	app := &cli.App{
		Name:  "readmoo-summary",
		Usage: "Summarize Readmoo reader pages into key points",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to config.yaml (default: XDG config dir)",
				EnvVars: []string{"READMOO_SUMMARY_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the SQLite database (default: XDG data dir)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "quickstart",
				Usage: "Print a quick-start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the background worker over HTTP",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: models.DefaultListenAddr,
					},
				},
			},
			{
				Name:   "summarize",
				Usage:  "Summarize a reader page",
				Action: summarize.SummarizeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "Reader page URL to fetch and summarize"},
					&cli.StringFlag{Name: "length", Usage: "short, medium or long (default: summaryLength setting)"},
					&cli.StringFlag{Name: "server", Usage: "Ask a running worker to summarize its active page"},
				},
			},
			{
				Name:   "extract",
				Usage:  "Extract readable content from a page",
				Action: summarize.ExtractAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "Page URL to fetch"},
					&cli.StringFlag{Name: "file", Usage: "Saved HTML file"},
					&cli.BoolFlag{Name: "markup", Usage: "Print the flattened text instead of the matched container"},
					&cli.StringFlag{Name: "fields", Usage: "Comma separated fields to output (e.g. text,matched_selector)"},
					formatFlag,
				},
			},
			{
				Name:   "observe",
				Usage:  "Report a completed reader request to a running worker",
				Action: summarize.ObserveAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "Requested URL", Required: true},
					&cli.IntFlag{Name: "status", Usage: "HTTP status code", Value: 200},
					&cli.StringFlag{Name: "document-id", Usage: "Owning document ID", Required: true},
					&cli.StringFlag{Name: "resource-type", Usage: "Resource type", Value: "xmlhttprequest"},
					&cli.StringFlag{Name: "server", Usage: "Worker address", Value: defaultServer},
				},
			},
			{
				Name:  "settings",
				Usage: "Show or change settings",
				Subcommands: []*cli.Command{
					{
						Name:   "get",
						Usage:  "Show current settings",
						Action: settings.GetAction,
						Flags:  []cli.Flag{formatFlag},
					},
					{
						Name:      "set",
						Usage:     "Merge key=value pairs into the settings",
						ArgsUsage: "key=value ...",
						Action:    settings.SetAction,
						Flags:     []cli.Flag{formatFlag},
					},
					{
						Name:   "reset",
						Usage:  "Restore the default settings",
						Action: settings.ResetAction,
						Flags:  []cli.Flag{formatFlag},
					},
				},
			},
			{
				Name:  "archive",
				Usage: "Manage saved summaries",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List saved summaries, newest first",
						Action: archive.ListAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "fields", Usage: "Comma separated fields to output (e.g. id,bookTitle,tags)"},
							&cli.StringFlag{Name: "format", Usage: "Output format: yaml or json"},
						},
					},
					{
						Name:   "save",
						Usage:  "Save a summary (default: the last computed summary)",
						Action: archive.SaveAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "summary", Usage: "Summary text"},
							&cli.StringFlag{Name: "book", Usage: "Book title"},
							&cli.StringFlag{Name: "chapter", Usage: "Chapter title"},
							&cli.StringFlag{Name: "notes", Usage: "Personal notes"},
							&cli.StringFlag{Name: "tags", Usage: "Comma separated tags"},
							&cli.StringFlag{Name: "url", Usage: "Source URL"},
						},
					},
					{
						Name:      "delete",
						Usage:     "Delete saved summaries by ID",
						ArgsUsage: "<id> ...",
						Action:    archive.DeleteAction,
					},
					{
						Name:   "clear",
						Usage:  "Delete every saved summary",
						Action: archive.ClearAction,
					},
					{
						Name:      "show",
						Usage:     "Print one saved summary",
						ArgsUsage: "<id>",
						Action:    archive.ShowAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "format", Usage: "Output format: json or yaml", Value: "json"},
						},
					},
					{
						Name:   "export",
						Usage:  "Export the archive",
						Action: archive.ExportAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "format", Usage: "Output format: json or yaml", Value: "json"},
							&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to file instead of stdout"},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
