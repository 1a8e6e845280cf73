package settings

import (
	"context"
	"os"

	"github.com/dtnitsch/readmoo-summary/internal/common"
	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
	"github.com/urfave/cli/v2"
)

func GetAction(c *cli.Context) error {
	return run(c, protocol.Command{Kind: protocol.KindGetSettings})
}

// SetAction merges key=value arguments into the stored settings.
func SetAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: no settings given, want key=value ...", 1)
	}
	patch, err := models.PatchFromStrings(c.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return run(c, protocol.Command{Kind: protocol.KindUpdateSettings, Settings: patch})
}

func ResetAction(c *cli.Context) error {
	return run(c, protocol.Command{Kind: protocol.KindResetSettings})
}

func run(c *cli.Context, cmd protocol.Command) error {
	ctx := context.Background()
	rt, err := common.NewRuntime(ctx, c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer rt.Close()

	cmd.Surface = protocol.SurfaceCLI
	resp := rt.Dispatcher.Handle(ctx, cmd)
	if err := common.ResponseError(resp); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return common.WriteOutput(os.Stdout, resp.Settings, c.String("format"))
}
