package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/cli/config"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// globalConfig is shared by every subcommand
type globalConfig struct {
	logger  config.Logger
	backend config.Backend
	output  config.Output
	sentry  config.Sentry
	file    config.ConfigFile

	loaded *config.File
	flush  func()
}

func (g *globalConfig) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, g.file.Flags()...)
	flags = append(flags, g.logger.Flags()...)
	flags = append(flags, g.backend.Flags()...)
	flags = append(flags, g.output.Flags()...)
	flags = append(flags, g.sentry.Flags()...)
	return flags
}

// newSession wires a session to the configured backend and output. The
// returned function releases the output.
func (g *globalConfig) newSession(ctx context.Context, opts ...usecase.Option) (*usecase.Session, interfaces.Saver, func(), error) {
	client, err := g.backend.New()
	if err != nil {
		return nil, nil, nil, err
	}

	saver, closer, err := g.output.NewSaver(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return usecase.NewSession(client, saver, opts...), saver, closer, nil
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", slog.Any("error", err))
	}

	g := &globalConfig{flush: func() {}}
	var logger *slog.Logger

	app := &cli.Command{
		Name:    "tiksnap",
		Usage:   "Download TikTok slideshows, videos and audio",
		Version: types.Version,
		Flags:   g.flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			loaded, err := g.file.Load()
			if err != nil {
				return nil, err
			}
			loaded.ApplyGlobal(c, &g.logger, &g.backend, &g.output, &g.sentry)
			g.loaded = loaded

			logger, err = g.logger.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			flush, err := g.sentry.Configure()
			if err != nil {
				return nil, err
			}
			g.flush = flush

			logger.Debug("Configured",
				"backend", g.backend.URL,
				"output", g.output.Location,
				"sentry", g.sentry,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			g.flush()
			return nil
		},
		Commands: []*cli.Command{
			cmdGet(g),
			cmdShell(g),
			cmdServe(g),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		if !goerr.HasTag(err, types.ErrTagEmptyResult) {
			logger.Error("CLI execution failed", slog.Any("error", err))
		}
		return err
	}

	return nil
}
