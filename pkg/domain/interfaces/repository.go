package interfaces

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/model"
)

// CatalogProvider is one source of service workflow records. Providers are
// tried in order until one returns records.
type CatalogProvider interface {
	// Name identifies the provider in logs and status output
	Name() string

	// Load reads all service records from the source
	Load(ctx context.Context) ([]*model.ServiceRecord, error)
}

// CatalogSource gives access to the current catalog snapshot
type CatalogSource interface {
	// Catalog returns the current immutable snapshot
	Catalog() *model.Catalog

	// DataDirFound reports whether the configured data path existed at the last load
	DataDirFound() bool
}
