package handlers

import (
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.GenreService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.GenreService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllGenres godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=[]models.Genre} "List of genres"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /genres [get]
func (h *GenreHandler) GetAllGenres(c *fiber.Ctx) error {
	genres, err := h.service.GetAllGenres(c.Context())
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve genres")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genres retrieved successfully", genres)
}

// GetGenreByID godoc
// @Summary Get genre by ID
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} utils.StandardResponse{data=models.Genre} "Genre details"
// @Failure 400 {object} utils.StandardResponse "Invalid genre ID"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /genres/{id} [get]
func (h *GenreHandler) GetGenreByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	genre, err := h.service.GetGenreByID(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve genre")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre retrieved successfully", genre)
}

// CreateGenre godoc
// @Summary Create a genre
// @Description Genre names are unique
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body GenreRequest true "Genre request object"
// @Success 201 {object} utils.StandardResponse{data=models.Genre} "Genre created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 409 {object} utils.StandardResponse "Genre name already exists"
// @Router /genres [post]
func (h *GenreHandler) CreateGenre(c *fiber.Ctx) error {
	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, h.logger, err, "Invalid request body")
	}

	genre, err := h.service.CreateGenre(c.Context(), req.Name)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to create genre")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Genre created successfully", genre)
}

// UpdateGenre godoc
// @Summary Rename a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path int true "Genre ID"
// @Param genre body GenreUpdateRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse{data=models.Genre} "Genre updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Failure 409 {object} utils.StandardResponse "Genre name already exists"
// @Router /genres/{id} [patch]
func (h *GenreHandler) UpdateGenre(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	var req GenreUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	genre, err := h.service.UpdateGenre(c.Context(), id, req.Name)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to update genre")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre updated successfully", genre)
}

// DeleteGenre godoc
// @Summary Delete a genre
// @Description Refused with 409 while movies use the genre. With force=true the genre is first removed from those movies.
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Param force query bool false "Detach from movies before deleting" default(false)
// @Success 200 {object} utils.StandardResponse "Genre deleted successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid genre ID"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Failure 409 {object} utils.StandardResponse "Genre is associated with movies"
// @Router /genres/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	if err := h.service.DeleteGenre(c.Context(), id, c.QueryBool("force", false)); err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to delete genre")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre deleted successfully", nil)
}
