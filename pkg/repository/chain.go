package repository

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/interfaces"
	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Chain tries catalog providers in order. The first provider returning at
// least one valid record wins.
type Chain struct {
	providers []interfaces.CatalogProvider
}

// NewChain creates a provider chain. Nil providers are dropped.
func NewChain(providers ...interfaces.CatalogProvider) *Chain {
	var list []interfaces.CatalogProvider
	for _, p := range providers {
		if p != nil {
			list = append(list, p)
		}
	}
	return &Chain{providers: list}
}

// Names returns provider names in the order they are tried
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Len returns the number of providers
func (c *Chain) Len() int {
	return len(c.providers)
}

// Load builds a catalog from the first provider that yields records
func (c *Chain) Load(ctx context.Context) (*model.Catalog, error) {
	catalog, _, err := c.LoadUpTo(ctx, len(c.providers))
	return catalog, err
}

// LoadUpTo is Load restricted to the first n providers. It also returns the
// position of the provider that answered.
func (c *Chain) LoadUpTo(ctx context.Context, n int) (*model.Catalog, int, error) {
	logger := ctxlog.From(ctx)

	n = min(max(n, 0), len(c.providers))

	for i, p := range c.providers[:n] {
		records, err := p.Load(ctx)
		if err != nil {
			logger.Warn("Catalog provider failed, trying next",
				"provider", p.Name(),
				"error", err,
			)
			continue
		}

		valid := validRecords(ctx, p.Name(), records)
		if len(valid) == 0 {
			logger.Warn("Catalog provider returned no records, trying next",
				"provider", p.Name(),
			)
			continue
		}

		logger.Info("Catalog loaded",
			"provider", p.Name(),
			"workflows", len(valid),
			"skipped", len(records)-len(valid),
		)
		return model.NewCatalog(p.Name(), valid), i, nil
	}

	return nil, -1, goerr.Wrap(model.ErrCatalogEmpty, "no catalog provider returned records",
		goerr.V("providers", c.Names()[:n]))
}

func validRecords(ctx context.Context, provider string, records []*model.ServiceRecord) []*model.ServiceRecord {
	logger := ctxlog.From(ctx)

	valid := make([]*model.ServiceRecord, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			continue
		}
		rec.Normalize()
		if err := rec.Validate(); err != nil {
			logger.Debug("Skipping invalid workflow record",
				"provider", provider,
				"index", i,
				"error", err,
			)
			continue
		}
		valid = append(valid, rec)
	}
	return valid
}
