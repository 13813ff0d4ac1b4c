package handlers

import (
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ActorHandler struct {
	service services.ActorService
	logger  *logrus.Logger
}

func NewActorHandler(service services.ActorService, logger *logrus.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllActors godoc
// @Summary List actors
// @Tags actors
// @Produce json
// @Param name query string false "Case-insensitive name fragment"
// @Success 200 {object} utils.StandardResponse{data=[]models.Actor} "List of actors"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /actors [get]
func (h *ActorHandler) GetAllActors(c *fiber.Ctx) error {
	actors, err := h.service.GetAllActors(c.Context(), c.Query("name"))
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve actors")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Actors retrieved successfully", actors)
}

// GetActorByID godoc
// @Summary Get actor by ID
// @Tags actors
// @Produce json
// @Param id path int true "Actor ID"
// @Success 200 {object} utils.StandardResponse{data=models.Actor} "Actor details"
// @Failure 400 {object} utils.StandardResponse "Invalid actor ID"
// @Failure 404 {object} utils.StandardResponse "Actor not found"
// @Router /actors/{id} [get]
func (h *ActorHandler) GetActorByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid actor ID")
	}

	actor, err := h.service.GetActorByID(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve actor")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Actor retrieved successfully", actor)
}

// CreateActor godoc
// @Summary Create an actor
// @Tags actors
// @Accept json
// @Produce json
// @Param actor body ActorRequest true "Actor request object"
// @Success 201 {object} utils.StandardResponse{data=models.Actor} "Actor created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Router /actors [post]
func (h *ActorHandler) CreateActor(c *fiber.Ctx) error {
	var req ActorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, h.logger, err, "Invalid request body")
	}

	actor, err := h.service.CreateActor(c.Context(), req.Name, req.BirthDate)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to create actor")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Actor created successfully", actor)
}

// UpdateActor godoc
// @Summary Partially update an actor
// @Tags actors
// @Accept json
// @Produce json
// @Param id path int true "Actor ID"
// @Param actor body ActorUpdateRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse{data=models.Actor} "Actor updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Actor not found"
// @Router /actors/{id} [patch]
func (h *ActorHandler) UpdateActor(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid actor ID")
	}

	var req ActorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	actor, err := h.service.UpdateActor(c.Context(), id, services.ActorUpdate{
		Name:      req.Name,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to update actor")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Actor updated successfully", actor)
}

// DeleteActor godoc
// @Summary Delete an actor
// @Description Refused with 409 while the actor appears in movies. With force=true the actor is first removed from those movies.
// @Tags actors
// @Produce json
// @Param id path int true "Actor ID"
// @Param force query bool false "Detach from movies before deleting" default(false)
// @Success 200 {object} utils.StandardResponse "Actor deleted successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid actor ID"
// @Failure 404 {object} utils.StandardResponse "Actor not found"
// @Failure 409 {object} utils.StandardResponse "Actor is associated with movies"
// @Router /actors/{id} [delete]
func (h *ActorHandler) DeleteActor(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid actor ID")
	}

	if err := h.service.DeleteActor(c.Context(), id, c.QueryBool("force", false)); err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to delete actor")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Actor deleted successfully", nil)
}

// GetActorMovies godoc
// @Summary List an actor's movies
// @Tags actors
// @Produce json
// @Param id path int true "Actor ID"
// @Success 200 {object} utils.StandardResponse{data=[]models.Movie} "Movies of the actor"
// @Failure 404 {object} utils.StandardResponse "Actor not found"
// @Router /actors/{id}/movies [get]
func (h *ActorHandler) GetActorMovies(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid actor ID")
	}

	movies, err := h.service.GetActorMovies(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve movies")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies)
}

// ReplaceActorMovies godoc
// @Summary Replace an actor's movies
// @Description Always overwrites the whole filmography. An empty or omitted movie_ids list removes the actor from every movie.
// @Tags actors
// @Accept json
// @Produce json
// @Param id path int true "Actor ID"
// @Param movies body ActorMoviesRequest true "Complete list of movie IDs"
// @Success 200 {object} utils.StandardResponse{data=[]models.Movie} "Movies replaced successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Actor or movie not found"
// @Router /actors/{id}/movies [put]
func (h *ActorHandler) ReplaceActorMovies(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid actor ID")
	}

	var req ActorMoviesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, h.logger, err, "Invalid request body")
	}

	movies, err := h.service.ReplaceActorMovies(c.Context(), id, req.MovieIDs)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to replace movies")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Movies replaced successfully", movies)
}
