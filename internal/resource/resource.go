// Package resource defines the eight dashboard collections: their client
// shapes' normalizers and the descriptors that parameterize the generic
// store and list-view layers.
//
// A normalizer is a pure function from a loosely-typed backend record to a
// fully-populated client record. Every defaultable field gets a documented
// default, so view code never checks for a missing field. Normalizers are
// idempotent: normalizing an already-normalized record yields the same
// record.
package resource

import "encoding/json"

// Raw is a loosely-typed backend record as decoded from JSON.
type Raw = map[string]any

// Descriptor parameterizes the generic store and list view for one
// collection.
type Descriptor[T any] struct {
	// Name is the singular display name used in error strings.
	Name string
	// Plural is the route segment on the dashboard API.
	Plural string
	// Path is the upstream collection path under /admin/.
	Path string
	// PageSize is the fixed page size for this screen.
	PageSize int
	// SearchFields are the client-shape keys matched by the free-text query.
	SearchFields []string
	// FilterFields are the categorical filter keys this screen offers.
	FilterFields []string
	// Normalize maps a backend record to the client shape.
	Normalize func(Raw) T
	// ID extracts the record identifier.
	ID func(T) string
	// PrepareCreate optionally massages a create payload before submission.
	PrepareCreate func(Raw) Raw
	// DeriveStats optionally computes the stats aggregate from items, used
	// as a fallback when the upstream /stats endpoint has no data. Both
	// paths must produce the same shape.
	DeriveStats func([]T) map[string]float64
}

// Fields flattens a client-shape record back into a Raw map via its JSON
// tags. Used for merging partial updates and for text search.
func Fields(v any) Raw {
	b, err := json.Marshal(v)
	if err != nil {
		return Raw{}
	}
	var m Raw
	if err := json.Unmarshal(b, &m); err != nil {
		return Raw{}
	}
	return m
}
