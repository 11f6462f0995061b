package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a background goroutine with panic recovery.
// The handler shares ctx, so it stops when the caller cancels. The returned
// channel is closed once the handler has returned.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(ctx).Error("Panic in background handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := handler(ctx); err != nil {
			ctxlog.From(ctx).Error("Error in background handler",
				"error", err,
			)
		}
	}()

	return done
}
