package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/controller/shell"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/infra/browser"
	"github.com/tiksnap/tiksnap/pkg/usecase"
	"github.com/tiksnap/tiksnap/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdGet(g *globalConfig) *cli.Command {
	var (
		mode   string
		zip    bool
		mp3    bool
		images bool
	)

	return &cli.Command{
		Name:      "get",
		Aliases:   []string{"g"},
		Usage:     "Extract a post and save its media",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "mode",
				Aliases:     []string{"m"},
				Usage:       "Display mode (image, audio)",
				Value:       string(model.DefaultMode),
				Destination: &mode,
			},
			&cli.BoolFlag{
				Name:        "zip",
				Usage:       "Save all slideshow images as one zip archive",
				Destination: &zip,
			},
			&cli.BoolFlag{
				Name:        "mp3",
				Usage:       "Save the audio track",
				Destination: &mp3,
			},
			&cli.BoolFlag{
				Name:        "images",
				Usage:       "Save every slideshow image separately",
				Destination: &images,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			postURL := c.Args().First()
			if postURL == "" {
				return goerr.New("url is required", goerr.T(types.ErrTagValidation))
			}

			displayMode, err := model.ParseMode(mode)
			if err != nil {
				return goerr.Wrap(err, "invalid --mode", goerr.T(types.ErrTagValidation))
			}

			printer := shell.NewPrinter(os.Stdout)
			session, saver, closeOutput, err := g.newSession(ctx, usecase.WithPresenter(printer))
			if err != nil {
				return err
			}
			defer closeOutput()

			session.SetMode(ctx, displayMode)
			if err := session.Extract(ctx, postURL); err != nil {
				// Conversion only needs the submitted URL, so an empty result
				// does not stop --mp3
				if !mp3 || !goerr.HasTag(err, types.ErrTagEmptyResult) {
					return err
				}
				logger.Debug("Nothing to show, converting anyway", "url", postURL)
			}

			// Outputs are independent, so they run side by side
			var eg errgroup.Group
			if zip {
				eg.Go(func() error {
					saved, err := session.DownloadZip(ctx)
					if err != nil {
						return err
					}
					if saved == nil {
						printer.Println("no images to zip")
					}
					printer.Saved(saved)
					return nil
				})
			}
			if mp3 {
				eg.Go(func() error {
					saved, err := session.ConvertAudio(ctx)
					if err != nil {
						return err
					}
					printer.Saved(saved)
					return nil
				})
			}
			if images {
				navigator := browser.New(http.DefaultClient, saver)
				eg.Go(func() error {
					return saveImages(ctx, session, navigator, printer)
				})
			}

			if err := eg.Wait(); err != nil {
				return err
			}

			logger.Debug("Get finished", "url", postURL)
			return nil
		},
	}
}

// saveImages follows every image link in order. A failed image is reported
// and skipped.
func saveImages(ctx context.Context, session *usecase.Session, navigator *browser.Navigator, printer *shell.Printer) error {
	screen := session.Screen()
	if !screen.Session.Result.HasImages() {
		printer.Println("no images to save")
		return nil
	}

	var failed int
	for i := range screen.Session.Result.Images {
		link, err := session.ImageLink(i)
		if err != nil {
			return err
		}

		saved, err := navigator.Open(ctx, link)
		if err != nil {
			failed++
			errutil.Handle(ctx, "Failed to save image", goerr.Wrap(err, "image download failed", goerr.V("index", i)))
			continue
		}
		printer.Saved(saved)
	}

	if failed > 0 {
		return goerr.New("some images were not saved", goerr.V("failed", failed))
	}
	return nil
}
