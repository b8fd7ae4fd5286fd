package source

import (
	"context"
	"fmt"

	"interval-series-service/internal/series/core/calendar"
	"interval-series-service/internal/series/core/domain"
	"interval-series-service/internal/series/core/ports"
)

// Queryable delegates grouping and aggregation to the data store.
type Queryable struct {
	querier ports.GroupedQuerier
}

func NewQueryable(q ports.GroupedQuerier) *Queryable {
	return &Queryable{querier: q}
}

func (s *Queryable) Aggregate(ctx context.Context, spec domain.QuerySpec) (domain.Sparse, error) {
	window, err := calendar.Bounds(spec)
	if err != nil {
		return nil, err
	}

	rows, err := s.querier.QueryGrouped(ctx, ports.GroupedQuery{
		GroupByColumn:   spec.GroupByColumn,
		AggregateColumn: spec.AggregateColumn,
		Kind:            spec.Kind,
		Granularity:     spec.Granularity,
		Window:          window,
	})
	if err != nil {
		// storage errors are the caller's to interpret
		return nil, err
	}

	sparse := make(domain.Sparse, len(rows))
	for _, row := range rows {
		if _, dup := sparse[row.Date]; dup {
			return nil, fmt.Errorf("grouped query returned bucket %s twice", row.Date)
		}
		sparse[row.Date] = row.Value
	}
	return sparse, nil
}
