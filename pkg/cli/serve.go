package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/cli/config"
	controller "github.com/tiksnap/tiksnap/pkg/controller/http"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/infra/clipboard"
	"github.com/tiksnap/tiksnap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe(g *globalConfig) *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the local control API",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			if g.loaded != nil {
				g.loaded.ApplyServer(c, &serverCfg)
			}

			logger.Info("Starting tiksnap server",
				slog.String("addr", serverCfg.Addr),
				slog.String("backend", g.backend.URL),
			)

			sessionUC, _, closeOutput, err := g.newSession(ctx,
				usecase.WithClipboard(clipboard.New()),
				usecase.WithRenderHook(func(ctx context.Context, screen *model.Screen) {
					ctxlog.From(ctx).Info("Session updated",
						slog.Int("revision", screen.UI.Revision),
						slog.String("mode", string(screen.Session.Mode)),
					)
				}),
			)
			if err != nil {
				return err
			}
			defer closeOutput()

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				sessionUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
