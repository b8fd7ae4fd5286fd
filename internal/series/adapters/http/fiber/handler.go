package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"interval-series-service/internal/series/core/domain"
	"interval-series-service/internal/series/core/resolver"
)

type SeriesEngine interface {
	Aggregate(ctx context.Context, collection any, kind domain.AggregateKind, g domain.Granularity, call resolver.Call) (*domain.Series, error)
}

// CollectionFunc returns the stored collection, narrowed to dataset when it is not empty.
type CollectionFunc func(dataset string) any

type SeriesHandler struct {
	engine         SeriesEngine
	collection     CollectionFunc
	defaultGroupBy string
	log            *zap.Logger
}

func NewSeriesHandler(engine SeriesEngine, collection CollectionFunc, defaultGroupBy string, log *zap.Logger) *SeriesHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SeriesHandler{
		engine:         engine,
		collection:     collection,
		defaultGroupBy: defaultGroupBy,
		log:            log,
	}
}

var granularityNames = map[domain.Granularity]string{
	domain.Day:   "daily",
	domain.Week:  "weekly",
	domain.Month: "monthly",
	domain.Year:  "yearly",
}

// GetSeries godoc
// @Summary Interval series over stored records
// @Description Groups stored records into day/week/month/year buckets and returns one value per bucket, zero-filled
// @Tags Series
// @Produce json
// @Param granularity path string true "daily | weekly | monthly | yearly"
// @Param kind path string true "count | sum | average"
// @Param group_by_column query string false "Timestamp column (defaults to the configured column)"
// @Param aggregate_column query string false "Numeric column, required for sum and average"
// @Param from query string true "Start of the range (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "End of the range, defaults to now"
// @Param normalize_dates query bool false "Snap the range to bucket boundaries (default true)"
// @Param dataset query string false "Only records of this dataset"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /series/{granularity}/{kind} [get]
func (h *SeriesHandler) GetSeries(c *fiber.Ctx) error {
	g, kind, err := parsePath(c)
	if err != nil {
		return h.fail(c, err)
	}

	call, err := buildCall(
		c.Query("group_by_column", h.defaultGroupBy),
		c.Query("aggregate_column"),
		c.Query("from"),
		c.Query("to"),
		c.Query("normalize_dates"),
	)
	if err != nil {
		return h.fail(c, err)
	}

	series, err := h.engine.Aggregate(c.UserContext(), h.collection(c.Query("dataset")), kind, g, call)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(g, kind, series))
}

// PostSeries godoc
// @Summary Interval series over posted rows
// @Description Aggregates the rows in the request body in memory
// @Tags Series
// @Accept json
// @Produce json
// @Param granularity path string true "daily | weekly | monthly | yearly"
// @Param kind path string true "count | sum | average"
// @Param request body SeriesRequest true "Rows and query"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /series/{granularity}/{kind} [post]
func (h *SeriesHandler) PostSeries(c *fiber.Ctx) error {
	g, kind, err := parsePath(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req SeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	normalize := ""
	if req.NormalizeDates != nil {
		normalize = strconv.FormatBool(*req.NormalizeDates)
	}
	call, err := buildCall(req.GroupByColumn, req.AggregateColumn, req.From, req.To, normalize)
	if err != nil {
		return h.fail(c, err)
	}

	rows := lo.Map(req.Rows, func(r map[string]any, _ int) domain.Row {
		return domain.Row(r)
	})

	series, err := h.engine.Aggregate(c.UserContext(), domain.Rows(rows), kind, g, call)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(g, kind, series))
}

func parsePath(c *fiber.Ctx) (domain.Granularity, domain.AggregateKind, error) {
	g, err := domain.ParseGranularity(c.Params("granularity"))
	if err != nil {
		return 0, 0, err
	}
	kind, err := domain.ParseAggregateKind(c.Params("kind"))
	if err != nil {
		return 0, 0, err
	}
	return g, kind, nil
}

func buildCall(groupBy, aggregate, from, to, normalize string) (resolver.Keyed, error) {
	call := resolver.Keyed{
		GroupByColumn:   groupBy,
		AggregateColumn: aggregate,
	}

	var err error
	if call.From, err = parseTime("from", from); err != nil {
		return call, err
	}
	if call.To, err = parseTime("to", to); err != nil {
		return call, err
	}

	if normalize != "" {
		v, err := strconv.ParseBool(normalize)
		if err != nil {
			return call, fmt.Errorf("%w: normalize_dates must be a boolean, got %q", domain.ErrArgument, normalize)
		}
		call.NormalizeDates = &v
	}
	return call, nil
}

// parseTime leaves empty values zero so the resolver applies its own defaults.
func parseTime(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := resolver.ParseTime(s)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s must be a date, got %q", domain.ErrArgument, field, s)
	}
	// a zero instant would read as "omitted" downstream
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %s must be after 0001-01-01T00:00:00Z, got %q", domain.ErrArgument, field, s)
	}
	return t, nil
}

func toResponse(g domain.Granularity, kind domain.AggregateKind, s *domain.Series) SeriesResponse {
	return SeriesResponse{
		Granularity: granularityNames[g],
		Kind:        kind.String(),
		Values:      s.Values(),
		ValuesAndDates: lo.Map(s.ValuesAndDates(), func(b domain.Bucket, _ int) BucketResponse {
			return BucketResponse{Date: b.Date.String(), Value: b.Value}
		}),
	}
}

func (h *SeriesHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrArgument),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrRangeTooLarge),
		errors.Is(err, domain.ErrInvalidRecord):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	default:
		h.log.Error("series aggregation failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
