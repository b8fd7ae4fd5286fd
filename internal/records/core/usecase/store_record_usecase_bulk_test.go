package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"interval-series-service/internal/records/core/domain"
)

// Fake repo
type fakeBulkRepo struct {
	InsertCalls []*domain.Record
	Results     []bool
	Err         error
}

func (f *fakeBulkRepo) InsertRecord(ctx context.Context, r *domain.Record) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	f.InsertCalls = append(f.InsertCalls, r)

	if len(f.Results) == 0 {
		// default: created
		return true, nil
	}

	res := f.Results[0]
	f.Results = f.Results[1:]
	return res, nil
}

func bulkInput(at time.Time) BulkCreateRecordsInput {
	return BulkCreateRecordsInput{
		Records: []StoreRecordInput{
			{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{"author": "a"}},
			{Dataset: "blogs", RecordedAt: at.Add(time.Second)},
			{Dataset: "page_views", RecordedAt: at},
		},
	}
}

func TestBulkCreateRecords_AllCreated(t *testing.T) {
	repo := &fakeBulkRepo{Results: []bool{true, true, true}}
	uc := NewStoreRecordUseCase(repo)

	res, err := uc.BulkCreateRecords(context.Background(), bulkInput(time.Now().Add(-time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 3 || res.Duplicates != 0 {
		t.Fatalf("expected 3 created / 0 duplicates, got %+v", res)
	}
	if len(repo.InsertCalls) != 3 {
		t.Fatalf("expected 3 inserts, got %d", len(repo.InsertCalls))
	}
}

func TestBulkCreateRecords_MixedDuplicates(t *testing.T) {
	repo := &fakeBulkRepo{Results: []bool{true, false, true}}
	uc := NewStoreRecordUseCase(repo)

	res, err := uc.BulkCreateRecords(context.Background(), bulkInput(time.Now().Add(-time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || res.Duplicates != 1 {
		t.Fatalf("expected 2 created / 1 duplicate, got %+v", res)
	}
}

func TestBulkCreateRecords_ValidatesBeforeInserting(t *testing.T) {
	repo := &fakeBulkRepo{}
	uc := NewStoreRecordUseCase(repo)

	in := bulkInput(time.Now().Add(-time.Minute))
	in.Records[2].Dataset = ""

	_, err := uc.BulkCreateRecords(context.Background(), in)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if len(repo.InsertCalls) != 0 {
		t.Fatalf("expected no inserts, got %d", len(repo.InsertCalls))
	}
}

func TestBulkCreateRecords_RepositoryError(t *testing.T) {
	repo := &fakeBulkRepo{Err: errors.New("db failure")}
	uc := NewStoreRecordUseCase(repo)

	res, err := uc.BulkCreateRecords(context.Background(), bulkInput(time.Now().Add(-time.Minute)))
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected 'db failure', got %v", err)
	}
	if res.Created != 0 {
		t.Fatalf("expected 0 created, got %d", res.Created)
	}
}

func TestBuildDedupeKey_HashesCanonicalJSON(t *testing.T) {
	at := time.Unix(0, 1376006400000000000).UTC()
	r := &domain.Record{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{}}

	sum := sha256.Sum256([]byte(`{"dataset":"blogs","recorded_at":1376006400000000000,"amount":null,"labels":{}}`))
	want := hex.EncodeToString(sum[:])
	if got := buildDedupeKey(r); got != want {
		t.Fatalf("expected key %q, got %q", want, got)
	}
}

func TestBuildDedupeKey_Amount(t *testing.T) {
	at := time.Unix(0, 1376006400000000000).UTC()
	withoutAmount := &domain.Record{Dataset: "blogs", RecordedAt: at}
	zero := &domain.Record{Dataset: "blogs", RecordedAt: at, Amount: decimal.NewNullDecimal(decimal.Zero)}
	ten := &domain.Record{Dataset: "blogs", RecordedAt: at, Amount: decimal.NewNullDecimal(decimal.NewFromInt(10))}

	keys := map[string]bool{
		buildDedupeKey(withoutAmount): true,
		buildDedupeKey(zero):          true,
		buildDedupeKey(ten):           true,
	}
	if len(keys) != 3 {
		t.Fatalf("expected 3 distinct keys, got %d", len(keys))
	}
}

func TestBuildDedupeKey_SeparatorsInValues(t *testing.T) {
	at := time.Unix(0, 1376006400000000000).UTC()
	cases := []struct {
		name string
		a, b *domain.Record
	}{
		{
			name: "comma and equals inside a label value",
			a:    &domain.Record{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{"a": "1,b=2"}},
			b:    &domain.Record{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{"a": "1", "b": "2"}},
		},
		{
			name: "label value spelling a second pair",
			a:    &domain.Record{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{"k": "a,b=c"}},
			b:    &domain.Record{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{"k": "a", "b": "c"}},
		},
		{
			name: "pipe inside the dataset",
			a:    &domain.Record{Dataset: "blogs|1", RecordedAt: at, Labels: map[string]string{}},
			b:    &domain.Record{Dataset: "blogs", RecordedAt: at, Labels: map[string]string{"1": ""}},
		},
	}

	for _, tc := range cases {
		if buildDedupeKey(tc.a) == buildDedupeKey(tc.b) {
			t.Fatalf("%s: expected distinct keys", tc.name)
		}
	}
}
