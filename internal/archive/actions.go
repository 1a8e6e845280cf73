package archive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/readmoo-summary/internal/common"
	"github.com/dtnitsch/readmoo-summary/models"
	archivepkg "github.com/dtnitsch/readmoo-summary/pkg/archive"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
	"github.com/urfave/cli/v2"
)

func ListAction(c *cli.Context) error {
	return withRuntime(c, func(ctx context.Context, rt *common.Runtime) error {
		resp, err := handle(ctx, rt, protocol.Command{Kind: protocol.KindListSummaries})
		if err != nil {
			return err
		}
		if len(resp.Summaries) == 0 {
			fmt.Println("No saved summaries")
			return nil
		}

		if c.IsSet("fields") || c.IsSet("format") {
			rows := make([]map[string]any, 0, len(resp.Summaries))
			for _, s := range resp.Summaries {
				rows = append(rows, common.FilterFields(s, c.String("fields")))
			}
			return common.WriteOutput(os.Stdout, rows, c.String("format"))
		}

		fmt.Printf("%-36s %-20s %-24s %-24s\n", "ID", "Created", "Book", "Chapter")
		fmt.Println(strings.Repeat("-", 108))
		for _, s := range resp.Summaries {
			fmt.Printf("%-36s %-20s %-24s %-24s\n",
				s.ID,
				s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				clip(s.BookTitle, 24),
				clip(s.ChapterTitle, 24))
		}
		fmt.Printf("\nTotal: %d of %d\n", len(resp.Summaries), models.MaxSavedSummaries)
		return nil
	})
}

// SaveAction archives --summary text, or the worker's last summary when
// it is omitted.
func SaveAction(c *cli.Context) error {
	return withRuntime(c, func(ctx context.Context, rt *common.Runtime) error {
		entry := &models.SavedSummary{
			Summary:      c.String("summary"),
			BookTitle:    c.String("book"),
			ChapterTitle: c.String("chapter"),
			Notes:        c.String("notes"),
			Tags:         archivepkg.ParseTags(c.String("tags")),
			URL:          common.SanitizeURL(c.String("url")),
		}
		resp, err := handle(ctx, rt, protocol.Command{Kind: protocol.KindSaveSummary, Summary: entry})
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", resp.Saved.ID)
		return nil
	})
}

func DeleteAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: summary ID required", 1)
	}
	return withRuntime(c, func(ctx context.Context, rt *common.Runtime) error {
		for _, id := range c.Args().Slice() {
			resp, err := handle(ctx, rt, protocol.Command{Kind: protocol.KindDeleteSummary, ID: id})
			if err != nil {
				return err
			}
			if resp.Count == 0 {
				fmt.Printf("Not found: %s\n", id)
				continue
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	})
}

func ClearAction(c *cli.Context) error {
	return withRuntime(c, func(ctx context.Context, rt *common.Runtime) error {
		resp, err := handle(ctx, rt, protocol.Command{Kind: protocol.KindClearSummaries})
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d saved summaries\n", resp.Count)
		return nil
	})
}

// ShowAction prints one saved summary in full.
func ShowAction(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("archive show needs an id", 2)
	}
	return withRuntime(c, func(ctx context.Context, rt *common.Runtime) error {
		resp, err := handle(ctx, rt, protocol.Command{Kind: protocol.KindGetSummary, ID: id})
		if err != nil {
			return err
		}
		return common.WriteOutput(os.Stdout, resp.Saved, outputFormat(c))
	})
}

// ExportAction writes the archive export document to --output or stdout.
func ExportAction(c *cli.Context) error {
	return withRuntime(c, func(ctx context.Context, rt *common.Runtime) error {
		resp, err := handle(ctx, rt, protocol.Command{Kind: protocol.KindExportSummaries})
		if err != nil {
			return err
		}

		path := c.String("output")
		if path == "" {
			return common.WriteOutput(os.Stdout, resp.Export, outputFormat(c))
		}
		if err := writeFile(path, resp.Export, outputFormat(c)); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	})
}

// writeFile renders v into path. A failed close is reported when the write
// itself succeeded, since buffered data may not have reached disk.
func writeFile(path string, v any, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := common.WriteOutput(f, v, format); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func outputFormat(c *cli.Context) string {
	if format := c.String("format"); format != "" {
		return format
	}
	return "json"
}

func withRuntime(c *cli.Context, fn func(ctx context.Context, rt *common.Runtime) error) error {
	ctx := context.Background()
	rt, err := common.NewRuntime(ctx, c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer rt.Close()
	return fn(ctx, rt)
}

func handle(ctx context.Context, rt *common.Runtime, cmd protocol.Command) (protocol.Response, error) {
	cmd.Surface = protocol.SurfaceCLI
	resp := rt.Dispatcher.Handle(ctx, cmd)
	if err := common.ResponseError(resp); err != nil {
		return resp, cli.Exit(err.Error(), 1)
	}
	return resp, nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
