package model

import (
	"sort"
	"time"

	"github.com/govpulse/govpulse/pkg/domain/types"
)

// Catalog is an immutable snapshot of service workflows keyed by normalized
// service name. A nil *Catalog behaves as an empty catalog.
type Catalog struct {
	records  map[types.ServiceKey]*ServiceRecord
	source   string
	revision types.CatalogRevision
	loadedAt time.Time
}

// NewCatalog builds a catalog from records. Records without a key are
// ignored and a later record replaces an earlier one with the same key.
func NewCatalog(source string, records []*ServiceRecord) *Catalog {
	m := make(map[types.ServiceKey]*ServiceRecord, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		c := rec.Copy()
		c.Normalize()
		if c.Key == "" {
			continue
		}
		m[c.Key] = &c
	}

	return &Catalog{
		records:  m,
		source:   source,
		revision: types.NewCatalogRevision(),
		loadedAt: time.Now(),
	}
}

// Find looks a service up by any spelling of its name
func (c *Catalog) Find(name string) (ServiceRecord, bool) {
	if c == nil {
		return ServiceRecord{}, false
	}
	rec, ok := c.records[types.NewServiceKey(name)]
	if !ok {
		return ServiceRecord{}, false
	}
	return rec.Copy(), true
}

// Lookup returns the record for name or the default record when absent
func (c *Catalog) Lookup(name string) ServiceRecord {
	if rec, ok := c.Find(name); ok {
		return rec
	}
	return DefaultServiceRecord(name)
}

// Len returns the number of services in the catalog
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Keys returns all service keys in sorted order
func (c *Catalog) Keys() []types.ServiceKey {
	if c == nil {
		return nil
	}
	keys := make([]types.ServiceKey, 0, len(c.records))
	for k := range c.records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Source returns the name of the provider that produced the catalog
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Revision returns the snapshot identifier
func (c *Catalog) Revision() types.CatalogRevision {
	if c == nil {
		return ""
	}
	return c.revision
}

// LoadedAt returns when the snapshot was built
func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}
