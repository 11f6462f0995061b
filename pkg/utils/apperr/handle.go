package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an error that cannot be returned to the caller, such as a
// failure while writing an HTTP response. goerr values are attached so the
// log carries the error context.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if values := goerr.Values(err); len(values) > 0 {
		logger = logger.With("error_values", values)
	}
	logger.Error("application error", "error", err)
}
