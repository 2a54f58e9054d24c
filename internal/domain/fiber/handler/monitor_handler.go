package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/util"
)

type MonitorHandler struct {
	metrics *monitoring.Metrics
	db      *gorm.DB
}

func NewMonitorHandler(metrics *monitoring.Metrics, db *gorm.DB) *MonitorHandler {
	return &MonitorHandler{metrics: metrics, db: db}
}

// RegisterRoutes mounts the health probe on the app root and the metric
// endpoints inside the authenticated API group.
func (h *MonitorHandler) RegisterRoutes(app *fiber.App, api fiber.Router) {
	app.Get("/health", h.Health)
	api.Get("/monitor/metrics", h.Metrics)
	api.Get("/monitor/info", h.Info)
}

func (h *MonitorHandler) Health(c *fiber.Ctx) error {
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}
	code := fiber.StatusOK
	if dbStatus == "down" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}

func (h *MonitorHandler) Metrics(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get metrics",
		Data:    h.metrics.Snapshot(),
	})
}

func (h *MonitorHandler) Info(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get service info",
		Data:    h.metrics.Info(),
	})
}
