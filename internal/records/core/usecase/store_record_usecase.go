package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"interval-series-service/internal/records/core/domain"
	"interval-series-service/internal/records/core/ports"
)

var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrFutureTime    = errors.New("timestamp cannot be in the future")
)

type StoreRecordUseCase struct {
	repo ports.RecordRepositoryPort
	now  func() time.Time
}

func NewStoreRecordUseCase(repo ports.RecordRepositoryPort) *StoreRecordUseCase {
	return &StoreRecordUseCase{repo: repo, now: time.Now}
}

// WithClock replaces the clock used for the future-timestamp check.
func (uc *StoreRecordUseCase) WithClock(now func() time.Time) *StoreRecordUseCase {
	uc.now = now
	return uc
}

type StoreRecordInput struct {
	Dataset    string
	RecordedAt time.Time
	Amount     *decimal.Decimal
	Labels     map[string]string
}

func (uc *StoreRecordUseCase) Execute(ctx context.Context, in StoreRecordInput) (bool, error) {
	if err := uc.validateInput(in); err != nil {
		return false, err
	}

	if in.Labels == nil {
		in.Labels = map[string]string{}
	}

	r := &domain.Record{
		ID:         uuid.New(),
		Dataset:    in.Dataset,
		RecordedAt: in.RecordedAt.UTC(),
		Labels:     in.Labels,
	}
	if in.Amount != nil {
		r.Amount = decimal.NewNullDecimal(*in.Amount)
	}
	r.DedupeKey = buildDedupeKey(r)

	created, err := uc.repo.InsertRecord(ctx, r)
	if err != nil {
		return false, err
	}

	return created, nil
}

// dedupeFields is hashed into Record.DedupeKey. encoding/json escapes every
// value and sorts map keys, so distinct records never share an encoding.
type dedupeFields struct {
	Dataset    string            `json:"dataset"`
	RecordedAt int64             `json:"recorded_at"`
	Amount     *string           `json:"amount"`
	Labels     map[string]string `json:"labels"`
}

func buildDedupeKey(r *domain.Record) string {
	f := dedupeFields{
		Dataset:    r.Dataset,
		RecordedAt: r.RecordedAt.UnixNano(),
		Labels:     r.Labels,
	}
	if r.Amount.Valid {
		f.Amount = lo.ToPtr(r.Amount.Decimal.String())
	}

	// cannot fail: only strings and an int64
	b, _ := json.Marshal(f)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

type BulkCreateRecordsInput struct {
	Records []StoreRecordInput
}

type BulkCreateRecordsResult struct {
	Created    int
	Duplicates int
}

func (uc *StoreRecordUseCase) BulkCreateRecords(ctx context.Context, in BulkCreateRecordsInput) (BulkCreateRecordsResult, error) {
	var res BulkCreateRecordsResult

	for i, r := range in.Records {
		if err := uc.validateInput(r); err != nil {
			return res, fmt.Errorf("record %d: %w", i, err)
		}
	}

	for _, r := range in.Records {
		ok, err := uc.Execute(ctx, r)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreRecordUseCase) validateInput(in StoreRecordInput) error {
	if strings.TrimSpace(in.Dataset) == "" {
		return fmt.Errorf("%w: dataset is required", ErrInvalidRecord)
	}
	if in.RecordedAt.IsZero() {
		return fmt.Errorf("%w: recorded_at is required", ErrInvalidRecord)
	}
	if in.RecordedAt.After(uc.now()) {
		return ErrFutureTime
	}
	return nil
}
