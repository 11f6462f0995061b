package config

import (
	"context"
	"log/slog"

	"github.com/govpulse/govpulse/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Postgres holds PostgreSQL catalog configuration
type Postgres struct {
	DSN string
}

// Flags returns CLI flags for Postgres configuration
func (p *Postgres) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-dsn",
			Usage:       "PostgreSQL connection string for the service_workflows table",
			Category:    "Catalog",
			Sources:     cli.EnvVars("GOVPULSE_CATALOG_DSN"),
			Destination: &p.DSN,
		},
	}
}

// IsConfigured checks if a DSN is set
func (p *Postgres) IsConfigured() bool {
	return p.DSN != ""
}

// Configure connects the Postgres provider
func (p *Postgres) Configure(ctx context.Context) (*repository.Postgres, error) {
	if !p.IsConfigured() {
		return nil, goerr.New("postgres catalog is not configured")
	}

	provider, err := repository.NewPostgres(ctx, p.DSN)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init postgres catalog")
	}
	return provider, nil
}

// LogValue returns structured log value. The DSN may carry credentials and
// is never logged.
func (p Postgres) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("configured", p.IsConfigured()),
	)
}
