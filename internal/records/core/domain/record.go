package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	seriesdomain "interval-series-service/internal/series/core/domain"
)

// Record is one stored measurement. Amount is NULL when the producer sent none.
type Record struct {
	ID         uuid.UUID
	Dataset    string
	RecordedAt time.Time
	Amount     decimal.NullDecimal
	Labels     map[string]string
	DedupeKey  string
}

// Field exposes columns by their table name so stored records can be fed
// straight into a materialized series.
func (r *Record) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID.String(), true
	case "dataset":
		return r.Dataset, true
	case "recorded_at":
		return r.RecordedAt, true
	case "amount":
		if !r.Amount.Valid {
			return nil, true
		}
		return r.Amount.Decimal, true
	case "dedupe_key":
		return r.DedupeKey, true
	}
	if v, ok := r.Labels[name]; ok {
		return v, true
	}
	return nil, false
}

type Records []*Record

func (rs Records) Each(fn func(seriesdomain.Record) error) error {
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
