package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"interval-series-service/internal/platform/sqldb"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id          UUID PRIMARY KEY,
    dataset     TEXT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL,
    amount      NUMERIC,
    labels      JSONB NOT NULL DEFAULT '{}'::jsonb,
    dedupe_key  TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (dataset, recorded_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id          TEXT PRIMARY KEY,
    dataset     TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL,
    amount      NUMERIC,
    labels      TEXT NOT NULL DEFAULT '{}',
    dedupe_key  TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (dataset, recorded_at);
`

// EnsureSchema creates the records table and its lookup index if missing.
func (r *RecordRepository) EnsureSchema(ctx context.Context) error {
	ddl := sqliteSchema
	if r.dialect == sqldb.Postgres {
		ddl = postgresSchema
	}

	index := strings.ReplaceAll(r.table, ".", "_") + "_dataset_recorded_at_idx"
	ddl = fmt.Sprintf(ddl, r.dialect.Quote(r.table), r.dialect.Quote(index))

	for _, stmt := range strings.Split(ddl, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
