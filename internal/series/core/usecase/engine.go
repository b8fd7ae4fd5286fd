package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"interval-series-service/internal/series/core/assembler"
	"interval-series-service/internal/series/core/calendar"
	"interval-series-service/internal/series/core/domain"
	"interval-series-service/internal/series/core/resolver"
	"interval-series-service/internal/series/core/source"
)

// Engine computes gapless interval series. It keeps no per-call state and is
// safe for concurrent use.
type Engine struct {
	resolver   *resolver.Resolver
	log        *zap.Logger
	maxBuckets int
}

type Option func(*Engine)

// WithClock sets the clock used when a call omits "to".
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.resolver = resolver.New(clock)
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMaxBuckets rejects ranges spanning more than n buckets. 0 disables the check.
func WithMaxBuckets(n int) Option {
	return func(e *Engine) {
		e.maxBuckets = n
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver.New(nil),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aggregate resolves call, reads collection once and returns the full series.
// Every input error is reported before the collection is touched.
func (e *Engine) Aggregate(
	ctx context.Context,
	collection any,
	kind domain.AggregateKind,
	g domain.Granularity,
	call resolver.Call,
) (*domain.Series, error) {
	spec, err := e.resolver.Resolve(kind, g, call)
	if err != nil {
		return nil, err
	}

	n, err := calendar.Count(spec.Granularity, spec.From, spec.To)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		e.log.Debug("empty range, skipping source",
			zap.Time("from", spec.From),
			zap.Time("to", spec.To))
		return domain.NewSeries(nil), nil
	}
	if e.maxBuckets > 0 && n > e.maxBuckets {
		return nil, fmt.Errorf("%w: %d %s buckets (max %d)", domain.ErrRangeTooLarge, n, spec.Granularity, e.maxBuckets)
	}

	dates, err := calendar.BucketDates(spec.Granularity, spec.From, spec.To)
	if err != nil {
		return nil, err
	}

	src, err := source.Select(collection)
	if err != nil {
		return nil, err
	}

	e.log.Debug("aggregating interval series",
		zap.Stringer("kind", spec.Kind),
		zap.Stringer("granularity", spec.Granularity),
		zap.String("group_by_column", spec.GroupByColumn.String()),
		zap.String("aggregate_column", spec.AggregateColumn.String()),
		zap.Time("from", spec.From),
		zap.Time("to", spec.To),
		zap.Bool("normalize_dates", spec.NormalizeDates),
		zap.Int("buckets", len(dates)),
		zap.String("source", fmt.Sprintf("%T", src)))

	sparse, err := src.Aggregate(ctx, spec)
	if err != nil {
		return nil, err
	}

	return assembler.Assemble(spec, dates, sparse), nil
}

func (e *Engine) CountDaily(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Count, domain.Day, call)
}

func (e *Engine) CountWeekly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Count, domain.Week, call)
}

func (e *Engine) CountMonthly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Count, domain.Month, call)
}

func (e *Engine) CountYearly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Count, domain.Year, call)
}

func (e *Engine) SumDaily(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Sum, domain.Day, call)
}

func (e *Engine) SumWeekly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Sum, domain.Week, call)
}

func (e *Engine) SumMonthly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Sum, domain.Month, call)
}

func (e *Engine) SumYearly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Sum, domain.Year, call)
}

func (e *Engine) AverageDaily(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Average, domain.Day, call)
}

func (e *Engine) AverageWeekly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Average, domain.Week, call)
}

func (e *Engine) AverageMonthly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Average, domain.Month, call)
}

func (e *Engine) AverageYearly(ctx context.Context, collection any, call resolver.Call) (*domain.Series, error) {
	return e.Aggregate(ctx, collection, domain.Average, domain.Year, call)
}
