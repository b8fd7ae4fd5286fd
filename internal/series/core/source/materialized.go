package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"interval-series-service/internal/series/core/calendar"
	"interval-series-service/internal/series/core/domain"
	"interval-series-service/internal/series/core/ports"
	"interval-series-service/internal/series/core/resolver"
)

// Materialized groups and aggregates an in-memory collection.
// Nil values behave like SQL NULLs: a nil timestamp never matches the
// window and a nil aggregate value is ignored by SUM and AVG.
type Materialized struct {
	records ports.Enumerable
}

func NewMaterialized(records ports.Enumerable) *Materialized {
	return &Materialized{records: records}
}

type accumulator struct {
	sum   decimal.Decimal
	count int64
}

func (s *Materialized) Aggregate(ctx context.Context, spec domain.QuerySpec) (domain.Sparse, error) {
	window, err := calendar.Bounds(spec)
	if err != nil {
		return nil, err
	}

	groupBy := spec.GroupByColumn.Name()
	aggregate := spec.AggregateColumn.Name()
	acc := map[civil.Date]*accumulator{}

	err = s.records.Each(func(r domain.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, _ := r.Field(groupBy)
		if isNull(raw) {
			return nil
		}
		ts, err := recordTime(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, groupBy, err)
		}
		if !window.Contains(ts) {
			return nil
		}

		value := decimal.NewFromInt(1)
		if spec.Kind.NeedsColumn() {
			raw, _ := r.Field(aggregate)
			if isNull(raw) {
				return nil
			}
			if value, err = recordNumber(raw); err != nil {
				return fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, aggregate, err)
			}
		}

		key := calendar.Truncate(spec.Granularity, ts)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
		}
		a.sum = a.sum.Add(value)
		a.count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	sparse := make(domain.Sparse, len(acc))
	for key, a := range acc {
		switch spec.Kind {
		case domain.Count:
			sparse[key] = float64(a.count)
		case domain.Sum:
			sparse[key] = a.sum.InexactFloat64()
		case domain.Average:
			sparse[key] = a.sum.Div(decimal.NewFromInt(a.count)).InexactFloat64()
		}
	}
	return sparse, nil
}

func isNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *time.Time:
		return x == nil
	case *float64:
		return x == nil
	case *int64:
		return x == nil
	}
	return false
}

func recordTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		return *x, nil
	case civil.Date:
		return x.In(time.UTC), nil
	case string:
		if t, ok := resolver.ParseTime(x); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", x)
	}
	return time.Time{}, fmt.Errorf("not a date: %T", v)
}

func recordNumber(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromUint64(uint64(x)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(x)), nil
	case uint64:
		return decimal.NewFromUint64(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case *float64:
		return decimal.NewFromFloat(*x), nil
	case *int64:
		return decimal.NewFromInt(*x), nil
	case decimal.Decimal:
		return x, nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(x))
	}
	return decimal.Decimal{}, fmt.Errorf("not a number: %T", v)
}
