package cli

import (
	"context"
	"time"

	"github.com/govpulse/govpulse/pkg/cli/config"
	"github.com/govpulse/govpulse/pkg/repository"
)

// WatchCatalog starts the catalog watcher the way serve does
func WatchCatalog(ctx context.Context, holder *repository.Holder, path string, delay time.Duration) (func(), error) {
	s := &catalogSetup{catalog: config.Catalog{Path: path, Watch: true, WatchDelay: delay}}
	return s.watchCatalog(ctx, holder)
}
