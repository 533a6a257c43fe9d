package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

// LoggingMiddleware returns a middleware that logs HTTP requests and puts the
// server logger into the request context
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			logger := ctxlog.From(ctx).With("request_id", reqID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctxlog.With(r.Context(), logger)))
		})
	}
}

// statusOf maps the error taxonomy onto HTTP status codes
func statusOf(err error) int {
	switch {
	case goerr.HasTag(err, types.ErrTagValidation):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagBusy):
		return http.StatusConflict
	case goerr.HasTag(err, types.ErrTagBackend), goerr.HasTag(err, types.ErrTagTransport):
		return http.StatusBadGateway
	case goerr.HasTag(err, types.ErrTagEmptyResult):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error  string        `json:"error"`
	Screen *model.Screen `json:"screen,omitempty"`
}

// writeError writes an error response carrying the screen the error left
func writeError(ctx context.Context, w http.ResponseWriter, err error, status int, screen *model.Screen) {
	writeJSON(ctx, w, status, &errorResponse{
		Error:  err.Error(),
		Screen: screen,
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
