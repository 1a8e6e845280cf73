package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/readmoo-summary/internal/common"
	"github.com/dtnitsch/readmoo-summary/internal/server"
	"github.com/urfave/cli/v2"
)

// ServeAction runs the background worker until interrupted.
func ServeAction(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rt, err := common.NewRuntime(ctx, c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer rt.Close()

	rt.Logger.Info("Worker ready",
		"db", rt.DB.Path(),
		"languages", rt.Config.Languages,
		"summarizer", rt.Config.AI != nil)

	srv := server.New(rt.Dispatcher, rt.Feed, rt.Logger)
	if err := server.Run(ctx, rt.Config.Listen, srv.Router(), rt.Logger); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
