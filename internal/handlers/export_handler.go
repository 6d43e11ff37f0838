package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"inventario/internal/services"
)

// ExportHandler handles HTTP requests for the CSV export.
type ExportHandler struct {
	service *services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service *services.ExportService) *ExportHandler {
	return &ExportHandler{
		service: service,
	}
}

// RegisterRoutes registers the export routes with the Fiber app.
func (h *ExportHandler) RegisterRoutes(router fiber.Router) {
	exportRoutes := router.Group("/export")
	exportRoutes.Get("/", h.HandleDownload)
	exportRoutes.Post("/share", h.HandleShare)
}

// HandleDownload returns the whole inventory as a CSV attachment.
func (h *ExportHandler) HandleDownload(c *fiber.Ctx) error {
	export, err := h.service.Export(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not export inventory")
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Send(export.Content)
}

// HandleShare hands the export to the configured share target.
func (h *ExportHandler) HandleShare(c *fiber.Ctx) error {
	export, err := h.service.Share(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not share inventory")
	}
	log.Printf("Operator %s shared %s", operatorOf(c), export.Filename)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":  "Export shared successfully",
		"filename": export.Filename,
	})
}
