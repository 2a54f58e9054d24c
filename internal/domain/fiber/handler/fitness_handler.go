package handler

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

const maxResumePDFBytes = 5 * 1024 * 1024

type FitnessHandler struct {
	uc *usecase.FitnessUsecase
}

func NewFitnessHandler(uc *usecase.FitnessUsecase) *FitnessHandler {
	return &FitnessHandler{uc: uc}
}

func (h *FitnessHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/fitness", middleware.RateLimiter(10, time.Minute), h.Evaluate)
	api.Post("/fitness/upload", middleware.RateLimiter(10, time.Minute), h.EvaluateUpload)
	api.Get("/fitness", h.List)
	api.Get("/fitness/:id", h.Get)
	api.Delete("/fitness/:id", h.Delete)
	api.Get("/analyses/:id/fitness", h.ListByAnalysis)
}

func (h *FitnessHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.FitnessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.run(c, req)
}

// EvaluateUpload accepts a resume as a PDF upload alongside the target
// analysis id as a form field.
func (h *FitnessHandler) EvaluateUpload(c *fiber.Ctx) error {
	analysisID := c.FormValue("analysis_id")
	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}
	if file.Size > maxResumePDFBytes {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is too large (max 5MB)",
		})
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "only PDF resumes are supported",
		})
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read resume file",
		}, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read resume file",
		}, err)
	}

	text, err := util.ExtractPDFText(data)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to extract resume text",
		}, err)
	}

	req := dto.FitnessRequest{AnalysisID: analysisID, ResumeText: text}
	if errs := util.ValidateStruct(&req); errs != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "validation failed",
			Details: errs,
		})
	}
	return h.run(c, req)
}

func (h *FitnessHandler) run(c *fiber.Ctx, req dto.FitnessRequest) error {
	record, res, err := h.uc.Evaluate(c.Context(), userID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to evaluate resume fitness",
		}, err)
	}

	resp := dto.NewFitnessResponse(record)
	resp.Metadata = metadataFrom(res, record.ProcessingTimeMs)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume fitness evaluated",
		Data:    resp,
	})
}

func (h *FitnessHandler) Get(c *fiber.Ctx) error {
	record, err := h.uc.Get(userID(c), c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "fitness score not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get fitness score",
		Data:    dto.NewFitnessResponse(record),
	})
}

func (h *FitnessHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(userID(c), c.Params("id")); err != nil {
		return notFoundOr(c, err, "fitness score not found")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Fitness score deleted",
	})
}

func (h *FitnessHandler) List(c *fiber.Ctx) error {
	page, pageSize, offset := paging(c)
	records, total, err := h.uc.List(userID(c), pageSize, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list fitness scores",
		}, err)
	}

	items := make([]dto.FitnessListItem, 0, len(records))
	for i := range records {
		items = append(items, dto.NewFitnessListItem(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list fitness scores",
		Data:       items,
		Pagination: paginationFor(page, pageSize, total),
	})
}

func (h *FitnessHandler) ListByAnalysis(c *fiber.Ctx) error {
	records, err := h.uc.ListByAnalysis(userID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list fitness scores",
		}, err)
	}
	items := make([]dto.FitnessListItem, 0, len(records))
	for i := range records {
		items = append(items, dto.NewFitnessListItem(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list fitness scores",
		Data:    items,
	})
}
