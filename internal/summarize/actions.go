package summarize

import (
	"context"
	"fmt"
	"os"

	"github.com/dtnitsch/readmoo-summary/internal/common"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
	"github.com/urfave/cli/v2"
)

// SummarizeAction summarizes --url in-process, or asks a running worker
// (--server) to summarize its active page.
func SummarizeAction(c *cli.Context) error {
	ctx := context.Background()
	cmd := protocol.Command{
		Kind:    protocol.KindSummarize,
		Surface: protocol.SurfaceCLI,
		Length:  c.String("length"),
	}

	var (
		resp protocol.Response
		err  error
	)
	if c.IsSet("server") {
		client, cerr := common.NewClient(c.String("server"))
		if cerr != nil {
			return cli.Exit(cerr.Error(), 1)
		}
		resp, err = client.Send(ctx, cmd)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
	} else {
		if !c.IsSet("url") {
			fmt.Fprintln(os.Stderr, "Error: No URL provided")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage:")
			fmt.Fprintln(os.Stderr, `  readmoo-summary summarize --url "https://reader.readmoo.com/e/<book>/p-12.xhtml"`)
			fmt.Fprintln(os.Stderr, `  readmoo-summary summarize --server http://127.0.0.1:8765`)
			return cli.Exit("", 1)
		}
		sourceURL, verr := common.ValidateURL(c.String("url"))
		if verr != nil {
			return cli.Exit(verr.Error(), 1)
		}

		rt, rerr := common.NewRuntime(ctx, c)
		if rerr != nil {
			return cli.Exit(rerr.Error(), 2)
		}
		defer rt.Close()

		rt.Coordinator.RecordObservedRequest(sourceURL)
		resp = rt.Dispatcher.Handle(ctx, cmd)
	}

	if err := common.ResponseError(resp); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Println(resp.Summary)
	return nil
}
