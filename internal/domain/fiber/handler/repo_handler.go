package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

type RepoHandler struct {
	uc *usecase.RepoUsecase
}

func NewRepoHandler(uc *usecase.RepoUsecase) *RepoHandler {
	return &RepoHandler{uc: uc}
}

func (h *RepoHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/repos/score", middleware.RateLimiter(10, time.Minute), h.Score)
	api.Get("/repos", h.List)
	api.Get("/repos/:id", h.Get)
	api.Delete("/repos/:id", h.Delete)
}

func (h *RepoHandler) Score(c *fiber.Ctx) error {
	var req dto.ScoreRepoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, res, err := h.uc.Score(c.Context(), userID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to score repository",
		}, err)
	}

	resp := dto.NewRepoAnalysisResponse(record)
	resp.Metadata = metadataFrom(res, record.ProcessingTimeMs)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Repository scored",
		Data:    resp,
	})
}

func (h *RepoHandler) Get(c *fiber.Ctx) error {
	record, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "repository analysis not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get repository analysis",
		Data:    dto.NewRepoAnalysisResponse(record),
	})
}

func (h *RepoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(userID(c), c.Params("id")); err != nil {
		return notFoundOr(c, err, "repository analysis not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Repository analysis deleted",
	})
}

func (h *RepoHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := paging(c)
	records, total, err := h.uc.List(userID(c), pageSize, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list repository analyses",
		}, err)
	}

	items := make([]dto.RepoAnalysisListItem, 0, len(records))
	for i := range records {
		items = append(items, dto.NewRepoAnalysisListItem(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list repository analyses",
		Data:       items,
		Pagination: paginationFor(page, pageSize, total),
	})
}
