package domain

import (
	"cloud.google.com/go/civil"
	"github.com/samber/lo"
)

// Sparse holds only the buckets that had at least one contributing record.
type Sparse map[civil.Date]float64

// Bucket is one period of a series, keyed by the period's start date.
type Bucket struct {
	Date  civil.Date `json:"date"`
	Value float64    `json:"value"`
}

// Series is an ordered, gapless run of buckets. It is read-only once built.
type Series struct {
	buckets []Bucket
}

func NewSeries(buckets []Bucket) *Series {
	return &Series{buckets: append([]Bucket(nil), buckets...)}
}

func (s *Series) Len() int {
	return len(s.buckets)
}

func (s *Series) Values() []float64 {
	return lo.Map(s.buckets, func(b Bucket, _ int) float64 {
		return b.Value
	})
}

func (s *Series) ValuesAndDates() []Bucket {
	out := make([]Bucket, len(s.buckets))
	copy(out, s.buckets)
	return out
}
