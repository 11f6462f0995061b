package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Holder keeps the current catalog snapshot. Snapshots are immutable and are
// replaced as a whole, so readers never observe a partial catalog.
type Holder struct {
	chain     *Chain
	dataPath  string
	current   atomic.Pointer[model.Catalog]
	dataFound atomic.Bool

	// mu serializes reloads; rank is the chain position of the current snapshot
	mu   sync.Mutex
	rank int
}

// NewHolder creates a holder loading from chain. dataPath is the optional
// file or directory reported by DataDirFound.
func NewHolder(chain *Chain, dataPath string) *Holder {
	return &Holder{
		chain:    chain,
		dataPath: dataPath,
	}
}

// Reload builds a new snapshot from the chain and swaps it in. Once a
// snapshot exists, only providers up to the one that produced it are asked,
// so a broken or removed data file never falls back to a lower provider. On
// failure the previous snapshot stays in place.
func (h *Holder) Reload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dataPath != "" {
		_, err := os.Stat(h.dataPath)
		h.dataFound.Store(err == nil)
	}

	prev := h.current.Load()
	limit := h.chain.Len()
	if prev != nil {
		limit = h.rank + 1
	}

	catalog, rank, err := h.chain.LoadUpTo(ctx, limit)
	if err != nil {
		return goerr.Wrap(err, "failed to reload catalog",
			goerr.V("current_source", prev.Source()))
	}

	h.current.Store(catalog)
	h.rank = rank
	ctxlog.From(ctx).Info("Catalog snapshot swapped",
		"source", catalog.Source(),
		"revision", catalog.Revision(),
		"previous_revision", prev.Revision(),
		"workflows", catalog.Len(),
	)
	return nil
}

// Catalog returns the current snapshot, nil before the first successful load
func (h *Holder) Catalog() *model.Catalog {
	return h.current.Load()
}

// DataDirFound reports whether the data path existed at the last reload
func (h *Holder) DataDirFound() bool {
	return h.dataFound.Load()
}
