package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

type PortfolioHandler struct {
	uc *usecase.PortfolioUsecase
}

func NewPortfolioHandler(uc *usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/portfolios", middleware.RateLimiter(5, time.Minute), h.Generate)
	api.Get("/portfolios", h.List)
	api.Get("/portfolios/:id", h.Get)
}

func (h *PortfolioHandler) Generate(c *fiber.Ctx) error {
	var req dto.PortfolioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, res, err := h.uc.Generate(c.Context(), userID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate portfolio kit",
		}, err)
	}

	resp := dto.NewPortfolioResponse(record)
	resp.Metadata = metadataFrom(res, record.ProcessingTimeMs)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Portfolio kit generated",
		Data:    resp,
	})
}

func (h *PortfolioHandler) Get(c *fiber.Ctx) error {
	record, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "portfolio not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get portfolio",
		Data:    dto.NewPortfolioResponse(record),
	})
}

func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := paging(c)
	records, total, err := h.uc.List(userID(c), pageSize, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list portfolios",
		}, err)
	}

	items := make([]dto.PortfolioListItem, 0, len(records))
	for i := range records {
		items = append(items, dto.NewPortfolioListItem(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list portfolios",
		Data:       items,
		Pagination: paginationFor(page, pageSize, total),
	})
}
