package resolver

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interval-series-service/internal/series/core/domain"
)

var (
	from = time.Date(2013, 8, 5, 0, 0, 0, 0, time.UTC)
	now  = time.Date(2013, 9, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return now }

func TestResolve_PositionalCount(t *testing.T) {
	r := New(fixedClock)

	spec, err := r.Resolve(domain.Count, domain.Week, Args("created_at", from, from))
	require.NoError(t, err)
	assert.Equal(t, domain.QuerySpec{
		GroupByColumn:  "created_at",
		Kind:           domain.Count,
		From:           from,
		To:             from,
		Granularity:    domain.Week,
		NormalizeDates: true,
	}, spec)
}

func TestResolve_PositionalSumAndAverage(t *testing.T) {
	r := New(fixedClock)

	for _, kind := range []domain.AggregateKind{domain.Sum, domain.Average} {
		spec, err := r.Resolve(kind, domain.Week, Args(domain.Column("created_at"), "arbitrary_number", from, from))
		require.NoError(t, err, kind.String())
		assert.Equal(t, domain.Column("created_at"), spec.GroupByColumn)
		assert.Equal(t, domain.Column("arbitrary_number"), spec.AggregateColumn)
		assert.Equal(t, kind, spec.Kind)
	}
}

func TestResolve_ColumnAndStringAreEquivalent(t *testing.T) {
	r := New(fixedClock)

	a, err := r.Resolve(domain.Sum, domain.Week, Args("created_at", "arbitrary_number", from, from))
	require.NoError(t, err)
	b, err := r.Resolve(domain.Sum, domain.Week, Args(domain.Column("created_at"), domain.Column("arbitrary_number"), from, from))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestResolve_PositionalDefaultsToNow(t *testing.T) {
	spec, err := New(fixedClock).Resolve(domain.Count, domain.Week, Args("created_at", from))
	require.NoError(t, err)
	assert.Equal(t, now, spec.To)
}

func TestResolve_PositionalNormalizeOverride(t *testing.T) {
	spec, err := New(fixedClock).Resolve(domain.Count, domain.Week,
		Args("created_at", from, from).WithNormalizeDates(false))
	require.NoError(t, err)
	assert.False(t, spec.NormalizeDates)
}

func TestResolve_Keyed(t *testing.T) {
	off := false
	spec, err := New(fixedClock).Resolve(domain.Average, domain.Month, Keyed{
		GroupByColumn:   "created_at",
		AggregateColumn: "arbitrary_number",
		From:            from,
		To:              from.AddDate(0, 1, 0),
		NormalizeDates:  &off,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QuerySpec{
		GroupByColumn:   "created_at",
		Kind:            domain.Average,
		AggregateColumn: "arbitrary_number",
		From:            from,
		To:              from.AddDate(0, 1, 0),
		Granularity:     domain.Month,
		NormalizeDates:  false,
	}, spec)
}

func TestResolve_KeyedDefaultsToNow(t *testing.T) {
	spec, err := New(fixedClock).Resolve(domain.Count, domain.Week, Keyed{GroupByColumn: "created_at", From: from})
	require.NoError(t, err)
	assert.Equal(t, now, spec.To)
	assert.True(t, spec.NormalizeDates)
}

func TestResolve_CountIgnoresAggregateColumn(t *testing.T) {
	spec, err := New(fixedClock).Resolve(domain.Count, domain.Week, Keyed{
		GroupByColumn:   "created_at",
		AggregateColumn: "arbitrary_number",
		From:            from,
	})
	require.NoError(t, err)
	assert.Empty(t, spec.AggregateColumn)
}

func TestResolve_DateLikeValues(t *testing.T) {
	r := New(fixedClock)
	for name, v := range map[string]any{
		"time pointer": &from,
		"civil date":   civil.Date{Year: 2013, Month: 8, Day: 5},
		"date string":  "2013-08-05",
		"rfc3339":      "2013-08-05T00:00:00Z",
		"sql style":    "2013-08-05 00:00:00",
	} {
		spec, err := r.Resolve(domain.Count, domain.Week, Args("created_at", v, v))
		require.NoError(t, err, name)
		assert.True(t, spec.From.Equal(from), name)
	}
}

func TestResolve_MissingAggregateColumn(t *testing.T) {
	r := New(fixedClock)

	// sum_weekly(:created_at, from, from): the date lands in the aggregate slot.
	_, err := r.Resolve(domain.Sum, domain.Week, Args("created_at", from, from))
	require.ErrorIs(t, err, domain.ErrArgument)
	assert.Contains(t, err.Error(), "aggregate_column")

	_, err = r.Resolve(domain.Average, domain.Week, Keyed{GroupByColumn: "created_at", From: from})
	require.ErrorIs(t, err, domain.ErrArgument)
	assert.Contains(t, err.Error(), "aggregate_column")
}

func TestResolve_FromNotDateLike(t *testing.T) {
	r := New(fixedClock)

	// count_weekly(:created_at, {}, {})
	_, err := r.Resolve(domain.Count, domain.Week, Args("created_at", map[string]any{}, map[string]any{}))
	require.ErrorIs(t, err, domain.ErrArgument)
	assert.Contains(t, err.Error(), "from")

	_, err = r.Resolve(domain.Count, domain.Week, Args("created_at", "yesterday"))
	assert.ErrorIs(t, err, domain.ErrArgument)

	_, err = r.Resolve(domain.Count, domain.Week, Args("created_at"))
	assert.ErrorIs(t, err, domain.ErrArgument)

	_, err = r.Resolve(domain.Count, domain.Week, Keyed{GroupByColumn: "created_at"})
	assert.ErrorIs(t, err, domain.ErrArgument)
}

func TestResolve_ToNotDateLike(t *testing.T) {
	_, err := New(fixedClock).Resolve(domain.Count, domain.Week, Args("created_at", from, 42))
	require.ErrorIs(t, err, domain.ErrArgument)
	assert.Contains(t, err.Error(), "to")
}

func TestResolve_GroupByColumn(t *testing.T) {
	r := New(fixedClock)

	_, err := r.Resolve(domain.Count, domain.Week, Args(nil, from))
	require.ErrorIs(t, err, domain.ErrArgument)
	assert.Contains(t, err.Error(), "group_by_column")

	_, err = r.Resolve(domain.Count, domain.Week, Args("created_at; drop table blogs", from))
	assert.ErrorIs(t, err, domain.ErrArgument)

	_, err = r.Resolve(domain.Count, domain.Week, Keyed{From: from})
	assert.ErrorIs(t, err, domain.ErrArgument)
}

func TestResolve_TooManyArguments(t *testing.T) {
	_, err := New(fixedClock).Resolve(domain.Count, domain.Week, Args("created_at", from, from, from))
	assert.ErrorIs(t, err, domain.ErrArgument)
}

func TestResolve_NilCall(t *testing.T) {
	_, err := New(fixedClock).Resolve(domain.Count, domain.Week, nil)
	assert.ErrorIs(t, err, domain.ErrArgument)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	args := []any{"created_at", "arbitrary_number", from, from}
	call := Positional{Args: args}

	_, err := New(fixedClock).Resolve(domain.Sum, domain.Week, call)
	require.NoError(t, err)
	assert.Equal(t, []any{"created_at", "arbitrary_number", from, from}, args)
	assert.Nil(t, call.NormalizeDates)
}

func TestNew_DefaultClock(t *testing.T) {
	before := time.Now()
	spec, err := New(nil).Resolve(domain.Count, domain.Week, Args("created_at", from))
	require.NoError(t, err)
	assert.False(t, spec.To.Before(before))
}
