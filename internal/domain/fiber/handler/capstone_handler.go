package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

type CapstoneHandler struct {
	uc *usecase.CapstoneUsecase
}

func NewCapstoneHandler(uc *usecase.CapstoneUsecase) *CapstoneHandler {
	return &CapstoneHandler{uc: uc}
}

func (h *CapstoneHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/capstones", middleware.RateLimiter(10, time.Minute), h.Generate)
	api.Get("/capstones", h.List)
	api.Get("/capstones/:id", h.Get)
	api.Patch("/capstones/:id/select", h.Select)
	api.Get("/analyses/:id/capstones", h.ListByAnalysis)
}

func (h *CapstoneHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateCapstonesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	projects, res, err := h.uc.Generate(c.Context(), userID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate capstone projects",
		}, err)
	}

	items := make([]dto.CapstoneResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewCapstoneResponse(&projects[i]))
	}
	batch := dto.CapstoneBatchResponse{
		Projects: items,
		Metadata: metadataFrom(res, res.TotalMs),
	}
	if len(projects) > 0 {
		batch.AnalysisID = projects[0].AnalysisID
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Capstone projects generated",
		Data:    batch,
	})
}

func (h *CapstoneHandler) Get(c *fiber.Ctx) error {
	project, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "capstone project not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get capstone project",
		Data:    dto.NewCapstoneResponse(project),
	})
}

func (h *CapstoneHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := paging(c)
	projects, total, err := h.uc.List(userID(c), pageSize, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list capstone projects",
		}, err)
	}

	items := make([]dto.CapstoneResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewCapstoneResponse(&projects[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list capstone projects",
		Data:       items,
		Pagination: paginationFor(page, pageSize, total),
	})
}

func (h *CapstoneHandler) ListByAnalysis(c *fiber.Ctx) error {
	projects, err := h.uc.ListByAnalysis(userID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list capstone projects",
		}, err)
	}
	items := make([]dto.CapstoneResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewCapstoneResponse(&projects[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list capstone projects",
		Data:    items,
	})
}

func (h *CapstoneHandler) Select(c *fiber.Ctx) error {
	project, err := h.uc.Select(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "capstone project not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Capstone project selected",
		Data:    dto.NewCapstoneResponse(project),
	})
}
