package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

type AnalysisHandler struct {
	uc *usecase.AnalysisUsecase
}

func NewAnalysisHandler(uc *usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/analyses", middleware.RateLimiter(10, time.Minute), h.Analyze)
	api.Get("/analyses", h.List)
	api.Get("/analyses/:id", h.Get)
	api.Get("/analyses/:id/similar", h.Similar)
	api.Delete("/analyses/:id", h.Delete)
}

func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeJDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, res, err := h.uc.Analyze(c.Context(), userID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to analyze job description",
		}, err)
	}

	resp := dto.NewAnalysisResponse(record)
	resp.Metadata = metadataFrom(res, record.ProcessingTimeMs)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job description analyzed",
		Data:    resp,
	})
}

func (h *AnalysisHandler) Get(c *fiber.Ctx) error {
	record, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "analysis not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get analysis",
		Data:    dto.NewAnalysisResponse(record),
	})
}

func (h *AnalysisHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := paging(c)
	records, total, err := h.uc.List(userID(c), pageSize, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list analyses",
		}, err)
	}

	items := make([]dto.AnalysisListItem, 0, len(records))
	for i := range records {
		items = append(items, dto.NewAnalysisListItem(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list analyses",
		Data:       items,
		Pagination: paginationFor(page, pageSize, total),
	})
}

func (h *AnalysisHandler) Similar(c *fiber.Ctx) error {
	items, err := h.uc.Similar(userID(c), c.Params("id"), c.QueryInt("top_k", 5))
	if err != nil {
		return notFoundOr(c, err, "analysis not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success find similar analyses",
		Data:    items,
	})
}

func (h *AnalysisHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(userID(c), c.Params("id")); err != nil {
		return notFoundOr(c, err, "analysis not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Analysis deleted",
	})
}

func notFoundOr(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: message,
		})
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: message,
	}, err)
}
