package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"interval-series-service/internal/platform/sqldb"
	"interval-series-service/internal/records/core/domain"
	"interval-series-service/internal/records/core/ports"
)

var ErrUpsertUnsupported = errors.New("dialect does not support idempotent inserts")

type RecordRepository struct {
	db      sqldb.DB
	dialect sqldb.Dialect
	table   string
}

func NewRecordRepository(db sqldb.DB, dialect sqldb.Dialect, table string) (*RecordRepository, error) {
	if !dialect.SupportsUpsert() {
		return nil, fmt.Errorf("%w: %s", ErrUpsertUnsupported, dialect)
	}
	return &RecordRepository{db: db, dialect: dialect, table: table}, nil
}

var _ ports.RecordRepositoryPort = (*RecordRepository)(nil)

// SQL template; %s is the quoted table, placeholders follow the dialect.
const insertRecordSQL = `
INSERT INTO %s (
    id,
    dataset,
    recorded_at,
    amount,
    labels,
    dedupe_key
) VALUES (
    %s
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *RecordRepository) InsertRecord(ctx context.Context, rec *domain.Record) (bool, error) {
	labelsJSON, err := json.Marshal(rec.Labels)
	if err != nil {
		return false, err
	}

	placeholders := make([]string, 6)
	for i := range placeholders {
		placeholders[i] = r.dialect.Placeholder(i + 1)
	}
	query := fmt.Sprintf(insertRecordSQL, r.dialect.Quote(r.table), strings.Join(placeholders, ", "))

	res, err := r.db.ExecContext(ctx, query,
		rec.ID.String(),
		rec.Dataset,
		rec.RecordedAt.UTC(),
		rec.Amount,
		string(labelsJSON),
		rec.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}
