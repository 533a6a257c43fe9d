package errutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{
			name:      "backend error",
			err:       goerr.New("backend request failed", goerr.T(types.ErrTagBackend), goerr.V("status", 502)),
			wantLevel: "level=ERROR",
		},
		{
			name:      "validation error",
			err:       goerr.New("url is empty", goerr.T(types.ErrTagValidation)),
			wantLevel: "level=WARN",
		},
		{
			name:      "busy",
			err:       goerr.New("operation already in flight", goerr.T(types.ErrTagBusy)),
			wantLevel: "level=DEBUG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := ctxlog.With(context.Background(), logger)

			errutil.Handle(ctx, "operation failed", tt.err)
			gt.String(t, buf.String()).Contains(tt.wantLevel)
			gt.String(t, buf.String()).Contains("operation failed")
		})
	}
}

func TestHandle_Values(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	errutil.Handle(ctx, "zip failed", goerr.New("boom", goerr.V("filename", "caption.zip")))
	gt.String(t, buf.String()).Contains("filename=caption.zip")
}

func TestHandle_Nil(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	errutil.Handle(ctx, "nothing", nil)
	gt.Value(t, buf.String()).Equal("")
}
