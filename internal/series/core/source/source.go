// Package source produces sparse per-bucket aggregates from a collection.
package source

import (
	"context"
	"fmt"

	"interval-series-service/internal/series/core/domain"
	"interval-series-service/internal/series/core/ports"
)

// Source yields the buckets that have at least one contributing record.
type Source interface {
	Aggregate(ctx context.Context, spec domain.QuerySpec) (domain.Sparse, error)
}

// Select picks the backend matching what the collection can do. A collection
// that can answer grouped queries is always queried rather than scanned.
func Select(collection any) (Source, error) {
	switch c := collection.(type) {
	case ports.GroupedQuerier:
		return NewQueryable(c), nil
	case ports.Enumerable:
		return NewMaterialized(c), nil
	case nil:
		return nil, fmt.Errorf("%w: nil collection", domain.ErrUnsupportedCollection)
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedCollection, collection)
	}
}
