// Package resolver turns the two supported call shapes into a QuerySpec.
package resolver

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"interval-series-service/internal/series/core/domain"
)

// Call is one of Positional or Keyed.
type Call interface {
	isCall()
}

// Positional mirrors the ordered argument form:
//
//	count:       (group_by_column, from[, to])
//	sum/average: (group_by_column, aggregate_column, from[, to])
//
// NormalizeDates stands in for the trailing options structure.
type Positional struct {
	Args           []any
	NormalizeDates *bool
}

// Args builds a Positional call.
func Args(args ...any) Positional {
	return Positional{Args: args}
}

// WithNormalizeDates returns a copy of p with the flag set.
func (p Positional) WithNormalizeDates(v bool) Positional {
	p.NormalizeDates = &v
	return p
}

// Keyed mirrors the options-structure form. A zero To means "now".
type Keyed struct {
	GroupByColumn   string
	AggregateColumn string
	From            time.Time
	To              time.Time
	NormalizeDates  *bool
}

func (Positional) isCall() {}
func (Keyed) isCall()      {}

// Resolver validates calls. The clock supplies the default for To.
type Resolver struct {
	clock func() time.Time
}

func New(clock func() time.Time) *Resolver {
	if clock == nil {
		clock = time.Now
	}
	return &Resolver{clock: clock}
}

// Resolve validates call for kind and granularity and returns the canonical spec.
func (r *Resolver) Resolve(kind domain.AggregateKind, g domain.Granularity, call Call) (domain.QuerySpec, error) {
	var raw rawArgs
	switch c := call.(type) {
	case Positional:
		var err error
		if raw, err = fromPositional(kind, c); err != nil {
			return domain.QuerySpec{}, err
		}
	case Keyed:
		raw = fromKeyed(c)
	case nil:
		return domain.QuerySpec{}, fmt.Errorf("%w: no arguments given", domain.ErrArgument)
	default:
		return domain.QuerySpec{}, fmt.Errorf("%w: unsupported call shape %T", domain.ErrArgument, call)
	}
	return r.build(kind, g, raw)
}

// rawArgs is the unvalidated union of both shapes.
type rawArgs struct {
	groupBy        any
	aggregate      any
	from           any
	to             any
	normalizeDates *bool
}

func fromPositional(kind domain.AggregateKind, p Positional) (rawArgs, error) {
	raw := rawArgs{normalizeDates: p.NormalizeDates}
	args := p.Args

	limit := 3
	if kind.NeedsColumn() {
		limit = 4
	}
	// Short argument lists fall through so the field checks can name what is missing.
	if len(args) > limit {
		return raw, fmt.Errorf("%w: wrong number of arguments (%d, at most %d)", domain.ErrArgument, len(args), limit)
	}

	next := func() any {
		if len(args) == 0 {
			return nil
		}
		v := args[0]
		args = args[1:]
		return v
	}

	raw.groupBy = next()
	if kind.NeedsColumn() {
		raw.aggregate = next()
	}
	raw.from = next()
	raw.to = next()
	return raw, nil
}

func fromKeyed(k Keyed) rawArgs {
	raw := rawArgs{
		groupBy:        k.GroupByColumn,
		aggregate:      k.AggregateColumn,
		normalizeDates: k.NormalizeDates,
	}
	if !k.From.IsZero() {
		raw.from = k.From
	}
	if !k.To.IsZero() {
		raw.to = k.To
	}
	return raw
}

func (r *Resolver) build(kind domain.AggregateKind, g domain.Granularity, raw rawArgs) (domain.QuerySpec, error) {
	groupBy, ok := asColumn(raw.groupBy)
	if !ok {
		return domain.QuerySpec{}, fmt.Errorf("%w: group_by_column is required and must be an identifier", domain.ErrArgument)
	}

	var aggregate domain.Column
	switch kind {
	case domain.Count:
	case domain.Sum, domain.Average:
		if aggregate, ok = asColumn(raw.aggregate); !ok {
			return domain.QuerySpec{}, fmt.Errorf("%w: aggregate_column is required for %s", domain.ErrArgument, kind)
		}
	default:
		return domain.QuerySpec{}, fmt.Errorf("%w: unknown aggregate %s", domain.ErrArgument, kind)
	}

	if raw.from == nil {
		return domain.QuerySpec{}, fmt.Errorf("%w: from is required", domain.ErrArgument)
	}
	from, ok := asTime(raw.from)
	if !ok {
		return domain.QuerySpec{}, fmt.Errorf("%w: from must be a date, got %T", domain.ErrArgument, raw.from)
	}

	to := r.clock()
	if raw.to != nil {
		if to, ok = asTime(raw.to); !ok {
			return domain.QuerySpec{}, fmt.Errorf("%w: to must be a date, got %T", domain.ErrArgument, raw.to)
		}
	}

	normalize := true
	if raw.normalizeDates != nil {
		normalize = *raw.normalizeDates
	}

	return domain.QuerySpec{
		GroupByColumn:   groupBy,
		Kind:            kind,
		AggregateColumn: aggregate,
		From:            from,
		To:              to,
		Granularity:     g,
		NormalizeDates:  normalize,
	}, nil
}

func asColumn(v any) (domain.Column, bool) {
	var c domain.Column
	switch x := v.(type) {
	case domain.Column:
		c = x
	case string:
		c = domain.Column(x)
	default:
		return "", false
	}
	return c, c.Valid()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case civil.Date:
		if !x.IsValid() {
			return time.Time{}, false
		}
		return x.In(time.UTC), true
	case string:
		return ParseTime(x)
	}
	return time.Time{}, false
}

// ParseTime parses the textual date forms accepted for from and to.
// Values without an offset are read as UTC.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
