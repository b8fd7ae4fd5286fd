package fiber

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRecordRequest represents record creation payload
// @Description Record creation DTO
type CreateRecordRequest struct {
	Dataset    string            `json:"dataset" example:"blogs"`
	RecordedAt time.Time         `json:"recorded_at" example:"2013-08-05T00:00:00Z"`
	Amount     *decimal.Decimal  `json:"amount,omitempty" swaggertype:"number" example:"10"`
	Labels     map[string]string `json:"labels,omitempty"`
}

type CreateRecordResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateRecordsRequest struct {
	Records []CreateRecordRequest `json:"records"`
}

type BulkCreateRecordsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_record"`
	Message string `json:"message,omitempty" example:"invalid record: dataset is required"`
}
