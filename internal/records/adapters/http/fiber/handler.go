package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"interval-series-service/internal/records/core/usecase"
)

type StoreRecordUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRecordInput) (bool, error)
	BulkCreateRecords(ctx context.Context, in usecase.BulkCreateRecordsInput) (usecase.BulkCreateRecordsResult, error)
}

type RecordHandler struct {
	storeUC StoreRecordUseCase
	log     *zap.Logger
}

func NewRecordHandler(storeUC StoreRecordUseCase, log *zap.Logger) *RecordHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecordHandler{storeUC: storeUC, log: log}
}

// CreateRecord godoc
// @Summary Store a record
// @Description Stores a single record with idempotency handling
// @Tags Records
// @Accept json
// @Produce json
// @Param request body CreateRecordRequest true "Record payload"
// @Success 201 {object} CreateRecordResponse
// @Success 200 {object} CreateRecordResponse "Duplicate record"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	var req CreateRecordRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return h.fail(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateRecordResponse{
			Status: "duplicate",
		})
	}

	return c.Status(http.StatusCreated).JSON(CreateRecordResponse{
		Status: "created",
	})
}

// BulkCreateRecords godoc
// @Summary Bulk store records
// @Description Validates every record first, then stores them one by one
// @Tags Records
// @Accept json
// @Produce json
// @Param request body BulkCreateRecordsRequest true "Bulk record payload"
// @Success 201 {object} BulkCreateRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /records/bulk [post]
func (h *RecordHandler) BulkCreateRecords(c *fiber.Ctx) error {
	var req BulkCreateRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Records) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "records_list_required",
		})
	}

	result, err := h.storeUC.BulkCreateRecords(
		c.UserContext(),
		usecase.BulkCreateRecordsInput{Records: lo.Map(req.Records, func(r CreateRecordRequest, _ int) usecase.StoreRecordInput {
			return toInput(r)
		})},
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateRecordsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

func toInput(r CreateRecordRequest) usecase.StoreRecordInput {
	return usecase.StoreRecordInput{
		Dataset:    r.Dataset,
		RecordedAt: r.RecordedAt,
		Amount:     r.Amount,
		Labels:     r.Labels,
	}
}

func (h *RecordHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRecord),
		errors.Is(err, usecase.ErrFutureTime):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_record",
			Message: err.Error(),
		})
	default:
		h.log.Error("storing record failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
