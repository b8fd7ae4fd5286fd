package ports

import (
	"context"

	"cloud.google.com/go/civil"

	"interval-series-service/internal/series/core/domain"
)

// GroupedQuery asks a storage collaborator to truncate GroupByColumn to
// Granularity, keep rows inside Window, group by the truncated value and
// compute Kind over AggregateColumn.
type GroupedQuery struct {
	GroupByColumn   domain.Column
	AggregateColumn domain.Column
	Kind            domain.AggregateKind
	Granularity     domain.Granularity
	Window          domain.Window
}

// RawBucket is one grouped row as returned by the collaborator.
type RawBucket struct {
	Date  civil.Date
	Value float64
}

// GroupedQuerier is implemented by collections backed by a live data store.
// Implementations must truncate weeks to Monday, like the calendar does.
type GroupedQuerier interface {
	QueryGrouped(ctx context.Context, q GroupedQuery) ([]RawBucket, error)
}

// Enumerable is implemented by finite, already fetched record collections.
type Enumerable interface {
	Each(fn func(domain.Record) error) error
}
