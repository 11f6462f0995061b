package usecase

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/interfaces"
	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// DefaultStatusMessage is reported by the root endpoint
const DefaultStatusMessage = "GovPulse backend running"

// DefaultServices returns the in-scope services reported by default
func DefaultServices() []string {
	return []string{
		"Income Certificate",
		"New Rice Card",
		"Marriage Certificate",
		"No Property Application Service",
	}
}

// ReportConfig holds configuration for Report use case
type ReportConfig struct {
	services      []string
	policy        model.WorkflowPolicy
	statusMessage string
}

// ReportOption is a functional option for configuring Report
type ReportOption func(*ReportConfig)

// WithServices sets the in-scope services in report order
func WithServices(services ...string) ReportOption {
	return func(c *ReportConfig) {
		c.services = services
	}
}

// WithWorkflowPolicy sets the workflow risk threshold and bottleneck role
func WithWorkflowPolicy(policy model.WorkflowPolicy) ReportOption {
	return func(c *ReportConfig) {
		c.policy = policy
	}
}

// WithStatusMessage sets the status text of the root endpoint
func WithStatusMessage(msg string) ReportOption {
	return func(c *ReportConfig) {
		c.statusMessage = msg
	}
}

// NewReportConfig creates a new ReportConfig with default values and optional settings
func NewReportConfig(opts ...ReportOption) *ReportConfig {
	config := &ReportConfig{
		services:      DefaultServices(),
		policy:        model.DefaultWorkflowPolicy(),
		statusMessage: DefaultStatusMessage,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// Report joins the catalog with the risk classifier and explanation generator
type Report struct {
	source interfaces.CatalogSource
	config *ReportConfig
}

var _ interfaces.Report = (*Report)(nil)

// NewReport creates a new Report use case
func NewReport(source interfaces.CatalogSource, config *ReportConfig) *Report {
	if config == nil {
		config = NewReportConfig()
	}
	return &Report{
		source: source,
		config: config,
	}
}

// Status returns the service status and catalog metadata
func (r *Report) Status(ctx context.Context) model.Status {
	catalog := r.source.Catalog()
	return model.Status{
		Status:          r.config.statusMessage,
		DataDirFound:    r.source.DataDirFound(),
		WorkflowsLoaded: catalog.Len(),
		CatalogSource:   catalog.Source(),
		CatalogRevision: catalog.Revision(),
	}
}

// ListServices classifies every in-scope service in configured order
func (r *Report) ListServices(ctx context.Context) []model.ServiceSummary {
	catalog := r.source.Catalog()

	results := make([]model.ServiceSummary, 0, len(r.config.services))
	for _, name := range r.config.services {
		rec := r.lookup(ctx, catalog, name)
		results = append(results, model.Summarize(name, rec, r.config.policy))
	}
	return results
}

// ExplainServices classifies and explains every in-scope service in configured order
func (r *Report) ExplainServices(ctx context.Context) []model.ServiceExplanation {
	catalog := r.source.Catalog()

	results := make([]model.ServiceExplanation, 0, len(r.config.services))
	for _, name := range r.config.services {
		rec := r.lookup(ctx, catalog, name)
		results = append(results, model.ExplainService(name, rec, r.config.policy))
	}
	return results
}

func (r *Report) lookup(ctx context.Context, catalog *model.Catalog, name string) model.ServiceRecord {
	rec, ok := catalog.Find(name)
	if !ok {
		ctxlog.From(ctx).Debug("Service not in catalog, using defaults",
			"service", name,
			"catalog_source", catalog.Source(),
		)
		return model.DefaultServiceRecord(name)
	}
	return rec
}
