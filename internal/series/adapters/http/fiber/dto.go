package fiber

// SeriesRequest is the body of an in-memory aggregation.
// @Description Rows are aggregated as given; timestamps may be RFC 3339 strings or YYYY-MM-DD dates.
type SeriesRequest struct {
	GroupByColumn   string           `json:"group_by_column" example:"created_at"`
	AggregateColumn string           `json:"aggregate_column,omitempty" example:"arbitrary_number"`
	From            string           `json:"from" example:"2013-08-05"`
	To              string           `json:"to,omitempty" example:"2013-08-31"`
	NormalizeDates  *bool            `json:"normalize_dates,omitempty"`
	Rows            []map[string]any `json:"rows"`
}

type BucketResponse struct {
	Date  string  `json:"date" example:"2013-08-05"`
	Value float64 `json:"value" example:"2"`
}

type SeriesResponse struct {
	Granularity    string           `json:"granularity" example:"weekly"`
	Kind           string           `json:"kind" example:"count"`
	Values         []float64        `json:"values"`
	ValuesAndDates []BucketResponse `json:"values_and_dates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"aggregate_column is required for sum"`
}
