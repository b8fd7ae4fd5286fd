// Package assembler zips the calendar with sparse results into a gapless series.
package assembler

import (
	"cloud.google.com/go/civil"

	"interval-series-service/internal/series/core/domain"
)

// Assemble returns one bucket per calendar date, in calendar order. Dates
// missing from sparse are reported as 0 whatever the aggregate kind.
//
// Without date normalization the first bucket is labelled with the raw
// from date; values are unaffected.
func Assemble(spec domain.QuerySpec, dates []civil.Date, sparse domain.Sparse) *domain.Series {
	buckets := make([]domain.Bucket, len(dates))
	for i, d := range dates {
		buckets[i] = domain.Bucket{Date: d, Value: sparse[d]}
	}

	if !spec.NormalizeDates && len(buckets) > 0 && !spec.From.IsZero() {
		buckets[0].Date = civil.DateOf(spec.From)
	}

	return domain.NewSeries(buckets)
}
