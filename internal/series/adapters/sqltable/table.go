package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/lo"

	"interval-series-service/internal/platform/sqldb"
	"interval-series-service/internal/series/core/domain"
	"interval-series-service/internal/series/core/ports"
)

// Table is a queryable collection backed by one SQL table, optionally
// narrowed by equality scopes. A Table is immutable; Where returns a copy.
type Table struct {
	db      sqldb.DB
	dialect sqldb.Dialect
	name    domain.Column
	scopes  map[string]any
	err     error
}

var _ ports.GroupedQuerier = (*Table)(nil)

func New(db sqldb.DB, dialect sqldb.Dialect, table string) (*Table, error) {
	name := domain.Column(table)
	if !name.Valid() {
		return nil, fmt.Errorf("%w: invalid table name %q", domain.ErrArgument, table)
	}
	switch dialect {
	case sqldb.Postgres, sqldb.SQLite, sqldb.ClickHouse:
	default:
		return nil, fmt.Errorf("%w: %q", sqldb.ErrUnknownDriver, dialect)
	}
	return &Table{db: db, dialect: dialect, name: name}, nil
}

// Where adds an equality condition. An invalid column is reported by the
// next QueryGrouped call.
func (t *Table) Where(column string, value any) *Table {
	scoped := *t
	scoped.scopes = make(map[string]any, len(t.scopes)+1)
	for k, v := range t.scopes {
		scoped.scopes[k] = v
	}
	if !domain.Column(column).Valid() && scoped.err == nil {
		scoped.err = fmt.Errorf("%w: invalid scope column %q", domain.ErrArgument, column)
	}
	scoped.scopes[column] = value
	return &scoped
}

func (t *Table) QueryGrouped(ctx context.Context, q ports.GroupedQuery) ([]ports.RawBucket, error) {
	query, args, err := t.build(q)
	if err != nil {
		return nil, err
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.RawBucket
	for rows.Next() {
		var bucket string
		var value sql.NullFloat64

		if err := rows.Scan(&bucket, &value); err != nil {
			return nil, err
		}
		// SUM/AVG over only NULLs
		if !value.Valid {
			continue
		}

		date, err := civil.ParseDate(bucketDate(bucket))
		if err != nil {
			return nil, fmt.Errorf("unexpected bucket label %q: %w", bucket, err)
		}
		out = append(out, ports.RawBucket{Date: date, Value: value.Float64})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (t *Table) build(q ports.GroupedQuery) (string, []any, error) {
	if t.err != nil {
		return "", nil, t.err
	}
	if !q.GroupByColumn.Valid() {
		return "", nil, fmt.Errorf("%w: invalid group_by_column %q", domain.ErrArgument, q.GroupByColumn)
	}
	if q.Kind.NeedsColumn() && !q.AggregateColumn.Valid() {
		return "", nil, fmt.Errorf("%w: invalid aggregate_column %q", domain.ErrArgument, q.AggregateColumn)
	}

	col := t.dialect.Quote(q.GroupByColumn.String())

	label, err := t.truncate(q.Granularity, col)
	if err != nil {
		return "", nil, err
	}
	agg, err := t.aggregate(q.Kind, q.AggregateColumn)
	if err != nil {
		return "", nil, err
	}

	endOp := "<="
	if q.Window.EndExclusive {
		endOp = "<"
	}

	args := []any{t.bind(q.Window.Start), t.bind(q.Window.End)}
	conds := []string{
		t.compare(col, ">=", 1),
		t.compare(col, endOp, 2),
	}

	keys := lo.Keys(t.scopes)
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, t.scopes[k])
		conds = append(conds, fmt.Sprintf("%s = %s", t.dialect.Quote(k), t.dialect.Placeholder(len(args))))
	}

	query := fmt.Sprintf(`
SELECT
    %s AS bucket,
    %s AS value
FROM %s
WHERE %s
GROUP BY bucket
ORDER BY bucket
`, label, agg, t.dialect.Quote(t.name.String()), strings.Join(conds, " AND "))

	return query, args, nil
}

// truncate renders the bucket label as a YYYY-MM-DD string. Weeks start on
// Monday in every dialect.
func (t *Table) truncate(g domain.Granularity, col string) (string, error) {
	switch t.dialect {
	case sqldb.Postgres:
		unit := map[domain.Granularity]string{
			domain.Day: "day", domain.Week: "week", domain.Month: "month", domain.Year: "year",
		}[g]
		if unit == "" {
			break
		}
		return fmt.Sprintf("to_char(date_trunc('%s', %s), 'YYYY-MM-DD')", unit, col), nil

	case sqldb.SQLite:
		switch g {
		case domain.Day:
			return fmt.Sprintf("date(%s)", col), nil
		case domain.Week:
			return fmt.Sprintf("date(%s, '-' || ((CAST(strftime('%%w', %s) AS INTEGER) + 6) %% 7) || ' days')", col, col), nil
		case domain.Month:
			return fmt.Sprintf("strftime('%%Y-%%m-01', %s)", col), nil
		case domain.Year:
			return fmt.Sprintf("strftime('%%Y-01-01', %s)", col), nil
		}

	case sqldb.ClickHouse:
		fn := map[domain.Granularity]string{
			domain.Day: "toDate", domain.Week: "toMonday", domain.Month: "toStartOfMonth", domain.Year: "toStartOfYear",
		}[g]
		if fn == "" {
			break
		}
		return fmt.Sprintf("toString(%s(%s))", fn, col), nil
	}
	return "", fmt.Errorf("%w: unsupported granularity %s", domain.ErrInvalidRange, g)
}

func (t *Table) aggregate(kind domain.AggregateKind, column domain.Column) (string, error) {
	var expr string
	switch kind {
	case domain.Count:
		expr = "COUNT(*)"
	case domain.Sum:
		expr = fmt.Sprintf("SUM(%s)", t.dialect.Quote(column.String()))
	case domain.Average:
		expr = fmt.Sprintf("AVG(%s)", t.dialect.Quote(column.String()))
	default:
		return "", fmt.Errorf("%w: unsupported aggregate %s", domain.ErrArgument, kind)
	}

	switch t.dialect {
	case sqldb.Postgres:
		return "CAST(" + expr + " AS DOUBLE PRECISION)", nil
	case sqldb.ClickHouse:
		return "toFloat64(" + expr + ")", nil
	default:
		return expr, nil
	}
}

// compare renders "col op placeholder". SQLite keeps timestamps as text, so
// both sides go through julianday to compare instants instead of strings.
func (t *Table) compare(col, op string, n int) string {
	if t.dialect == sqldb.SQLite {
		return fmt.Sprintf("julianday(%s) %s julianday(%s)", col, op, t.dialect.Placeholder(n))
	}
	return fmt.Sprintf("%s %s %s", col, op, t.dialect.Placeholder(n))
}

func (t *Table) bind(ts time.Time) any {
	if t.dialect == sqldb.SQLite {
		return ts.UTC().Format("2006-01-02 15:04:05.999999999")
	}
	return ts.UTC()
}

// bucketDate tolerates drivers that hand back a full timestamp for a date column.
func bucketDate(label string) string {
	if len(label) > len("2006-01-02") {
		return label[:len("2006-01-02")]
	}
	return label
}
