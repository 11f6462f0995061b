package cli

import (
	"context"

	"github.com/govpulse/govpulse/pkg/cli/config"
	"github.com/govpulse/govpulse/pkg/domain/interfaces"
	"github.com/govpulse/govpulse/pkg/repository"
	"github.com/govpulse/govpulse/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// catalogSetup bundles the catalog configuration of a command
type catalogSetup struct {
	catalog   config.Catalog
	postgres  config.Postgres
	firestore config.Firestore
}

func (s *catalogSetup) flags() []cli.Flag {
	return joinFlags(
		s.catalog.Flags(),
		s.postgres.Flags(),
		s.firestore.Flags(),
	)
}

// openCatalog builds the provider chain and loads the first snapshot. The
// returned cleanup closes database providers.
func (s *catalogSetup) openCatalog(ctx context.Context) (*repository.Holder, func(), error) {
	logger := ctxlog.From(ctx)

	var (
		providers []interfaces.CatalogProvider
		closers   []func() error
	)

	if s.postgres.IsConfigured() {
		pg, err := s.postgres.Configure(ctx)
		if err != nil {
			logger.Warn("Skipping postgres catalog provider", "error", err)
		} else {
			providers = append(providers, pg)
			closers = append(closers, pg.Close)
		}
	}

	if s.firestore.IsConfigured() {
		fs, err := s.firestore.Configure(ctx)
		if err != nil {
			logger.Warn("Skipping firestore catalog provider", "error", err)
		} else {
			providers = append(providers, fs)
			closers = append(closers, fs.Close)
		}
	}

	if file := s.catalog.FileProvider(); file != nil {
		providers = append(providers, file)
	}
	providers = append(providers, repository.NewDefaultStatic())

	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logger.Warn("Failed to close catalog provider", "error", err)
			}
		}
	}

	chain := repository.NewChain(providers...)
	holder := repository.NewHolder(chain, s.catalog.Path)
	if err := holder.Reload(ctx); err != nil {
		cleanup()
		return nil, nil, goerr.Wrap(err, "failed to load workflow catalog")
	}

	if s.catalog.Path != "" && !holder.DataDirFound() {
		logger.Warn("Workflow data path not found, using fallback catalog", "path", s.catalog.Path)
	}

	return holder, cleanup, nil
}

// watchCatalog starts the catalog watcher when enabled. The returned stop
// cancels it and waits for an in-flight reload, so providers can be closed
// afterwards.
func (s *catalogSetup) watchCatalog(ctx context.Context, holder *repository.Holder) (func(), error) {
	if !s.catalog.Watch {
		return func() {}, nil
	}
	if s.catalog.Path == "" {
		ctxlog.From(ctx).Warn("Catalog watch requested without a catalog path, ignoring")
		return func() {}, nil
	}

	watcher, err := repository.NewWatcher(holder, s.catalog.Path, s.catalog.WatchDelay)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start catalog watcher")
	}

	ctx, cancel := context.WithCancel(ctx)
	done := async.Dispatch(ctx, watcher.Run)
	return func() {
		cancel()
		<-done
	}, nil
}
