// Package calendar computes bucket boundaries for a granularity.
//
// Weeks start on Monday. Truncation happens in the location carried by the
// time value itself; no conversion is applied.
package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"interval-series-service/internal/series/core/domain"
)

// Truncate returns the start date of the period of g that contains t.
func Truncate(g domain.Granularity, t time.Time) civil.Date {
	d := civil.DateOf(t)
	switch g {
	case domain.Week:
		// Monday = 0 ... Sunday = 6
		offset := (int(t.Weekday()) + 6) % 7
		return d.AddDays(-offset)
	case domain.Month:
		return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	case domain.Year:
		return civil.Date{Year: d.Year, Month: time.January, Day: 1}
	default:
		return d
	}
}

// Next returns the start of the period following the one starting at d.
func Next(g domain.Granularity, d civil.Date) civil.Date {
	t := d.In(time.UTC)
	switch g {
	case domain.Week:
		t = t.AddDate(0, 0, 7)
	case domain.Month:
		t = t.AddDate(0, 1, 0)
	case domain.Year:
		t = t.AddDate(1, 0, 0)
	default:
		t = t.AddDate(0, 0, 1)
	}
	return civil.DateOf(t)
}

// BucketDates lists the start date of every period of g intersecting
// [from, to], ascending. A reversed range yields no buckets.
func BucketDates(g domain.Granularity, from, to time.Time) ([]civil.Date, error) {
	n, err := Count(g, from, to)
	if err != nil {
		return nil, err
	}

	dates := make([]civil.Date, 0, n)
	for d := Truncate(g, from); len(dates) < n; d = Next(g, d) {
		dates = append(dates, d)
	}
	return dates, nil
}

// Count returns len(BucketDates(g, from, to)) without building the list.
func Count(g domain.Granularity, from, to time.Time) (int, error) {
	if !g.Valid() {
		return 0, fmt.Errorf("%w: unknown granularity %s", domain.ErrInvalidRange, g)
	}
	if from.IsZero() {
		return 0, fmt.Errorf("%w: from is not a date", domain.ErrInvalidRange)
	}
	if to.IsZero() {
		return 0, fmt.Errorf("%w: to is not a date", domain.ErrInvalidRange)
	}
	if from.After(to) {
		return 0, nil
	}

	first, last := Truncate(g, from), Truncate(g, to)
	switch g {
	case domain.Week:
		return last.DaysSince(first)/7 + 1, nil
	case domain.Month:
		return (last.Year-first.Year)*12 + int(last.Month) - int(first.Month) + 1, nil
	case domain.Year:
		return last.Year - first.Year + 1, nil
	default:
		return last.DaysSince(first) + 1, nil
	}
}

// Bounds returns the window records are filtered to. With normalized dates
// the window covers whole periods; otherwise it is the raw closed range.
func Bounds(spec domain.QuerySpec) (domain.Window, error) {
	if !spec.Granularity.Valid() {
		return domain.Window{}, fmt.Errorf("%w: unknown granularity %s", domain.ErrInvalidRange, spec.Granularity)
	}
	if spec.From.IsZero() || spec.To.IsZero() {
		return domain.Window{}, fmt.Errorf("%w: from and to must be dates", domain.ErrInvalidRange)
	}

	if !spec.NormalizeDates {
		return domain.Window{Start: spec.From, End: spec.To}, nil
	}

	g := spec.Granularity
	return domain.Window{
		Start:        Truncate(g, spec.From).In(spec.From.Location()),
		End:          Next(g, Truncate(g, spec.To)).In(spec.To.Location()),
		EndExclusive: true,
	}, nil
}
