package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Group runs operations in the background and lets the owner wait for all of
// them before exiting. The zero value is ready to use.
type Group struct {
	wg sync.WaitGroup
}

// Go runs handler in a new goroutine on a background context that keeps the
// logger of ctx. Cancelling ctx does not stop the handler: a started operation
// always runs to completion.
func (g *Group) Go(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		run(newCtx, name, handler)
	}()
}

// Wait blocks until every handler started with Go has returned
func (g *Group) Wait() {
	g.wg.Wait()
}

// Dispatch executes a handler asynchronously without tracking it
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)
	go run(newCtx, name, handler)
}

// run executes handler, logging returned errors and recovering panics
func run(ctx context.Context, name string, handler func(ctx context.Context) error) {
	logger := ctxlog.From(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in async handler",
				"name", name,
				"recover", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := handler(ctx); err != nil {
		logger.Error("error in async handler", "name", name, "error", err)
	}
}

// newBackgroundContext creates a new background context preserving the
// ctxlog logger
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
