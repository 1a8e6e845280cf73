package summarize

import (
	"context"
	"fmt"
	"os"

	"github.com/dtnitsch/readmoo-summary/internal/common"
	"github.com/dtnitsch/readmoo-summary/pkg/extractor"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
	"github.com/urfave/cli/v2"
)

// ExtractAction runs the text extractor over a URL or a saved page.
// --markup prints the flattened text the summarizer would receive.
func ExtractAction(c *cli.Context) error {
	ctx := context.Background()

	if c.IsSet("url") == c.IsSet("file") {
		return cli.Exit("Error: provide exactly one of --url or --file", 1)
	}

	rt, err := common.NewRuntime(ctx, c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer rt.Close()

	cmd := protocol.Command{Kind: protocol.KindGetPageContent, Surface: protocol.SurfaceCLI}
	if c.IsSet("file") {
		raw, err := os.ReadFile(c.String("file"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to read %s: %v", c.String("file"), err), 1)
		}
		cmd.HTML = string(raw)
	} else {
		pageURL, err := common.ValidateURL(c.String("url"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if c.Bool("markup") {
			body, err := rt.Fetcher.GetHtmlBytes(ctx, pageURL)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			cmd.HTML = string(body)
		}
		cmd.URL = pageURL
	}

	if c.Bool("markup") {
		fmt.Println(extractor.FromMarkup(cmd.HTML))
		return nil
	}

	resp := rt.Dispatcher.Handle(ctx, cmd)
	if err := common.ResponseError(resp); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return common.WriteOutput(os.Stdout, common.FilterFields(resp.Content, c.String("fields")), c.String("format"))
}
