package handlers

import (
	"bytes"
	"errors"

	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExportHandler struct {
	service services.ExportService
	logger  *logrus.Logger
}

func NewExportHandler(service services.ExportService, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger,
	}
}

// ExportMovies godoc
// @Summary Export movies as CSV
// @Description One title,year,duration,genres,actors record per movie, with pipe-separated names. The output can seed an empty catalog.
// @Tags export
// @Produce text/csv
// @Success 200 {string} string "CSV export"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/export [get]
func (h *ExportHandler) ExportMovies(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if _, err := h.service.ExportMovies(c.Context(), &buf); err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to export movies")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movies.csv"`)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// ArchiveMovies godoc
// @Summary Archive a movie export
// @Description Store a CSV export in object storage and return a presigned download URL
// @Tags export
// @Produce json
// @Success 201 {object} utils.StandardResponse{data=services.ExportArchive} "Export archived successfully"
// @Failure 503 {object} utils.StandardResponse "Archive storage not configured"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/export/archive [post]
func (h *ExportHandler) ArchiveMovies(c *fiber.Ctx) error {
	archive, err := h.service.ArchiveMovies(c.Context())
	if errors.Is(err, services.ErrArchiveDisabled) {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to archive export")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Export archived successfully", archive)
}
