package types

import (
	"strings"

	"github.com/google/uuid"
)

// ServiceKey is the normalized form of a service name used for catalog lookup
type ServiceKey string

// String returns the string representation
func (k ServiceKey) String() string {
	return string(k)
}

// NewServiceKey normalizes a display service name: surrounding whitespace is
// trimmed, inner whitespace runs collapse to one space and letters are lowered.
func NewServiceKey(name string) ServiceKey {
	return ServiceKey(strings.Join(strings.Fields(strings.ToLower(name)), " "))
}

// CatalogRevision identifies one loaded catalog snapshot
type CatalogRevision string

// String returns the string representation
func (r CatalogRevision) String() string {
	return string(r)
}

// NewCatalogRevision creates a new CatalogRevision using UUID v7
func NewCatalogRevision() CatalogRevision {
	id, err := uuid.NewV7()
	if err != nil {
		return CatalogRevision(uuid.New().String())
	}
	return CatalogRevision(id.String())
}
