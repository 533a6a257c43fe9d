package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/tiksnap/tiksnap/pkg/controller/shell"
	"github.com/tiksnap/tiksnap/pkg/infra/browser"
	"github.com/tiksnap/tiksnap/pkg/infra/clipboard"
	"github.com/tiksnap/tiksnap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdShell(g *globalConfig) *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"sh"},
		Usage:   "Start an interactive session",
		Action: func(ctx context.Context, c *cli.Command) error {
			printer := shell.NewPrinter(os.Stdout)

			session, saver, closeOutput, err := g.newSession(ctx,
				usecase.WithPresenter(printer),
				usecase.WithClipboard(clipboard.New()),
			)
			if err != nil {
				return err
			}
			defer closeOutput()

			navigator := browser.New(http.DefaultClient, saver)
			return shell.New(session, navigator, printer, os.Stdin).Run(ctx)
		},
	}
}
