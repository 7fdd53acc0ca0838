// Package provider resolves media identifiers against upstream catalog
// services (openlibrary, tmdb, ...). The reconciliation pipeline treats
// every lookup as fallible and time-bounded; a slow or failed lookup
// becomes a per-item import failure, never a job failure.
package provider

import (
	"context"

	"github.com/mireo/fitvault/internal/model"
)

// Details is what an upstream catalog knows about one item.
type Details struct {
	Identifier  string            `json:"identifier"`
	Lot         model.MetadataLot `json:"lot"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	PublishYear *int              `json:"publish_year,omitempty"`
}

// MetadataProvider fetches details for an external identifier.
type MetadataProvider interface {
	Details(ctx context.Context, source model.MetadataSource, lot model.MetadataLot, identifier string) (*Details, error)
}
