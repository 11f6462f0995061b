package repository

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Expected table layout:
//
//	CREATE TABLE service_workflows (
//	    service_name text PRIMARY KEY,
//	    department   text,
//	    sla_days     integer,
//	    steps        text[],
//	    step_count   integer
//	);
const selectWorkflowsSQL = `SELECT service_name, COALESCE(department, ''), sla_days,
	COALESCE(steps, '{}'), COALESCE(step_count, 0)
FROM service_workflows
ORDER BY service_name`

// Postgres reads workflows from the service_workflows table
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database and verifies the connection
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create postgres pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to connect to postgres")
	}

	ctxlog.From(ctx).Info("Postgres catalog provider initialized")
	return &Postgres{pool: pool}, nil
}

// Name returns the provider name
func (p *Postgres) Name() string {
	return "postgres"
}

// Load reads every row of service_workflows
func (p *Postgres) Load(ctx context.Context) ([]*model.ServiceRecord, error) {
	rows, err := p.pool.Query(ctx, selectWorkflowsSQL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query workflows")
	}
	defer rows.Close()

	var records []*model.ServiceRecord
	for rows.Next() {
		var rec model.ServiceRecord
		if err := rows.Scan(&rec.Name, &rec.Department, &rec.SLADays, &rec.Steps, &rec.StepCount); err != nil {
			return nil, goerr.Wrap(err, "failed to scan workflow row")
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read workflow rows")
	}

	return records, nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
