package sqldb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Dialect selects the SQL flavour an adapter renders.
type Dialect string

const (
	Postgres   Dialect = "postgres"
	SQLite     Dialect = "sqlite"
	ClickHouse Dialect = "clickhouse"
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite3":
		return SQLite, nil
	case "clickhouse":
		return ClickHouse, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Placeholder returns the n-th (1-based) bind parameter marker.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Quote quotes a possibly qualified identifier ("t.col" -> "t"."col").
// All three dialects accept ANSI double-quoted identifiers.
func (d Dialect) Quote(ident string) string {
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// SupportsUpsert reports whether INSERT ... ON CONFLICT DO NOTHING is available.
func (d Dialect) SupportsUpsert() bool {
	return d == Postgres || d == SQLite
}
