// Package handler exposes the HTTP surface. Handlers bind and validate
// request DTOs, delegate to the usecases, and render the shared response
// envelope.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/response"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

const defaultPageSize = 20

func userID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.UserIDKey).(string); ok && id != "" {
		return id
	}
	return "anonymous"
}

func paging(c *fiber.Ctx) (page, pageSize, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

func paginationFor(page, pageSize int, total int64) *response.Pagination {
	return response.NewPagination(page, pageSize, total)
}

// bindAndValidate parses the JSON body into req and runs its validate
// tags. A non-nil return is the already-rendered error response.
func bindAndValidate(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if errs := util.ValidateStruct(req); errs != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "validation failed",
			Details: errs,
		})
	}
	return nil
}

// metadataFrom merges pipeline telemetry into the response metadata.
func metadataFrom(res *pipeline.Result, processingMs int64) dto.GenerationMetadata {
	meta := dto.GenerationMetadata{ProcessingTimeMs: processingMs}
	if res != nil {
		meta.CompletedStages = res.Completed
		meta.StageMs = res.StageMs
		meta.Attempts = res.Attempts
	}
	return meta
}
