package interfaces

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/model"
)

// Report defines the risk report operations served over HTTP and the CLI
type Report interface {
	// Status returns the service status and catalog metadata
	Status(ctx context.Context) model.Status

	// ListServices classifies every in-scope service
	ListServices(ctx context.Context) []model.ServiceSummary

	// ExplainServices classifies and explains every in-scope service
	ExplainServices(ctx context.Context) []model.ServiceExplanation
}
