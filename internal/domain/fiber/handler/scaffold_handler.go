package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

type ScaffoldHandler struct {
	uc *usecase.ScaffoldUsecase
}

func NewScaffoldHandler(uc *usecase.ScaffoldUsecase) *ScaffoldHandler {
	return &ScaffoldHandler{uc: uc}
}

func (h *ScaffoldHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/scaffolds", middleware.RateLimiter(5, time.Minute), h.Generate)
	api.Get("/scaffolds", h.List)
	api.Get("/scaffolds/:id", h.Get)
	api.Get("/scaffolds/:id/archive", h.Archive)
}

func (h *ScaffoldHandler) Generate(c *fiber.Ctx) error {
	var req dto.ScaffoldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, res, err := h.uc.Generate(c.Context(), userID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate scaffold",
		}, err)
	}

	resp := dto.NewScaffoldResponse(record, true)
	resp.Metadata = metadataFrom(res, record.ProcessingTimeMs)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Project scaffold generated",
		Data:    resp,
	})
}

func (h *ScaffoldHandler) Get(c *fiber.Ctx) error {
	record, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "scaffold not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get scaffold",
		Data:    dto.NewScaffoldResponse(record, true),
	})
}

// Archive streams the generated files as a zip. The project name becomes
// the top-level directory inside the archive.
func (h *ScaffoldHandler) Archive(c *fiber.Ctx) error {
	record, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "scaffold not found")
	}
	files := record.FileList()
	if len(files) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "scaffold has no files to archive",
		})
	}

	archive, err := util.ZipFiles(record.ProjectName, files)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to build archive",
		}, err)
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", record.ProjectName+".zip"))
	return c.Send(archive)
}

func (h *ScaffoldHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := paging(c)
	records, total, err := h.uc.List(userID(c), pageSize, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list scaffolds",
		}, err)
	}

	items := make([]dto.ScaffoldListItem, 0, len(records))
	for i := range records {
		items = append(items, dto.NewScaffoldListItem(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list scaffolds",
		Data:       items,
		Pagination: paginationFor(page, pageSize, total),
	})
}
