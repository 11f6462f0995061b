package config

import (
	"log/slog"
	"time"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/govpulse/govpulse/pkg/repository"
	"github.com/govpulse/govpulse/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Catalog holds workflow catalog and risk policy configuration
type Catalog struct {
	Path           string
	Watch          bool
	WatchDelay     time.Duration
	Services       []string
	HighRiskSteps  int
	BottleneckRole string
}

// Flags returns CLI flags for Catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-path",
			Usage:       "Workflow file (.xlsx, .csv, .yaml) or directory of them",
			Category:    "Catalog",
			Sources:     cli.EnvVars("GOVPULSE_CATALOG_PATH"),
			Destination: &c.Path,
		},
		&cli.BoolFlag{
			Name:        "catalog-watch",
			Usage:       "Reload the catalog when the workflow file changes",
			Category:    "Catalog",
			Sources:     cli.EnvVars("GOVPULSE_CATALOG_WATCH"),
			Destination: &c.Watch,
		},
		&cli.DurationFlag{
			Name:        "catalog-watch-delay",
			Usage:       "Quiet period before reloading a changed catalog",
			Category:    "Catalog",
			Value:       repository.DefaultReloadDelay,
			Sources:     cli.EnvVars("GOVPULSE_CATALOG_WATCH_DELAY"),
			Destination: &c.WatchDelay,
		},
		&cli.StringSliceFlag{
			Name:        "service",
			Usage:       "In-scope service name, in report order (repeatable)",
			Category:    "Report",
			Value:       usecase.DefaultServices(),
			Sources:     cli.EnvVars("GOVPULSE_SERVICES"),
			Destination: &c.Services,
		},
		&cli.IntFlag{
			Name:        "high-risk-steps",
			Usage:       "Workflow step count at which a service is flagged as high delay risk",
			Category:    "Report",
			Value:       model.DefaultHighRiskSteps,
			Sources:     cli.EnvVars("GOVPULSE_HIGH_RISK_STEPS"),
			Destination: &c.HighRiskSteps,
		},
		&cli.StringFlag{
			Name:        "bottleneck-role",
			Usage:       "Role reported as the delayed stage of high risk workflows",
			Category:    "Report",
			Value:       model.DefaultBottleneckRole,
			Sources:     cli.EnvVars("GOVPULSE_BOTTLENECK_ROLE"),
			Destination: &c.BottleneckRole,
		},
	}
}

// Policy returns the validated workflow risk policy
func (c *Catalog) Policy() (model.WorkflowPolicy, error) {
	policy := model.WorkflowPolicy{
		HighRiskSteps:  c.HighRiskSteps,
		BottleneckRole: c.BottleneckRole,
	}
	if err := policy.Validate(); err != nil {
		return model.WorkflowPolicy{}, goerr.Wrap(err, "invalid report configuration")
	}
	return policy, nil
}

// ReportConfig builds the report use case configuration
func (c *Catalog) ReportConfig() (*usecase.ReportConfig, error) {
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}

	opts := []usecase.ReportOption{usecase.WithWorkflowPolicy(policy)}
	if len(c.Services) > 0 {
		opts = append(opts, usecase.WithServices(c.Services...))
	}
	return usecase.NewReportConfig(opts...), nil
}

// FileProvider returns the file provider, or nil when no path is configured
func (c *Catalog) FileProvider() *repository.File {
	if c.Path == "" {
		return nil
	}
	return repository.NewFile(c.Path)
}

// LogValue returns structured log value
func (c Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", c.Path),
		slog.Bool("watch", c.Watch),
		slog.Duration("watch_delay", c.WatchDelay),
		slog.Any("services", c.Services),
		slog.Int("high_risk_steps", c.HighRiskSteps),
		slog.String("bottleneck_role", c.BottleneckRole),
	)
}
