package errutil

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

// Handle logs err and reports it to Sentry when a client is configured.
// Errors the user caused or that only mean "busy" are logged at a lower level
// and never reported.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)

	attrs := []any{slog.Any("error", err)}
	var gerr *goerr.Error
	if errors.As(err, &gerr) {
		for k, v := range gerr.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}

	switch {
	case goerr.HasTag(err, types.ErrTagBusy):
		logger.Debug(msg, attrs...)
		return
	case goerr.HasTag(err, types.ErrTagValidation), goerr.HasTag(err, types.ErrTagEmptyResult):
		logger.Warn(msg, attrs...)
		return
	}

	logger.Error(msg, attrs...)

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("message", msg)
			if gerr != nil {
				for k, v := range gerr.Values() {
					scope.SetExtra(k, v)
				}
			}
			hub.CaptureException(err)
		})
	}
}
