package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Granularity is the calendar period used for bucketing.
type Granularity int

const (
	Day Granularity = iota + 1
	Week
	Month
	Year
)

var granularityNames = map[Granularity]string{
	Day:   "day",
	Week:  "week",
	Month: "month",
	Year:  "year",
}

func (g Granularity) String() string {
	if s, ok := granularityNames[g]; ok {
		return s
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

func (g Granularity) Valid() bool {
	_, ok := granularityNames[g]
	return ok
}

// ParseGranularity accepts both the unit ("week") and the adverb ("weekly").
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	}
	return 0, fmt.Errorf("%w: unknown granularity %q", ErrInvalidRange, s)
}

// AggregateKind is the aggregate computed per bucket.
type AggregateKind int

const (
	Count AggregateKind = iota + 1
	Sum
	Average
)

func (k AggregateKind) String() string {
	switch k {
	case Count:
		return "count"
	case Sum:
		return "sum"
	case Average:
		return "average"
	}
	return fmt.Sprintf("aggregate(%d)", int(k))
}

// NeedsColumn reports whether the kind reads an aggregate column.
func (k AggregateKind) NeedsColumn() bool {
	return k == Sum || k == Average
}

func ParseAggregateKind(s string) (AggregateKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "count":
		return Count, nil
	case "sum":
		return Sum, nil
	case "average", "avg":
		return Average, nil
	}
	return 0, fmt.Errorf("%w: unknown aggregate %q", ErrArgument, s)
}

// Column names a field of a record or a column of a table.
type Column string

var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func (c Column) Valid() bool {
	return columnPattern.MatchString(string(c))
}

func (c Column) String() string {
	return string(c)
}

// Name is the unqualified part of the column ("blogs.created_at" -> "created_at").
func (c Column) Name() string {
	s := string(c)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// QuerySpec is the normalized form of one aggregation call.
type QuerySpec struct {
	GroupByColumn   Column
	Kind            AggregateKind
	AggregateColumn Column
	From            time.Time
	To              time.Time
	Granularity     Granularity
	NormalizeDates  bool
}

// Window is the time range records are filtered to. Start is always inclusive.
type Window struct {
	Start        time.Time
	End          time.Time
	EndExclusive bool
}

func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.EndExclusive {
		return t.Before(w.End)
	}
	return !t.After(w.End)
}
