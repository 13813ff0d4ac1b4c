package handlers

import (
	"strconv"

	"movie-catalog/internal/models"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary List movies
// @Description Zero-based paginated movie listing. At most one filter applies: genre wins over year, year wins over actor. A page past the end returns an empty list with the real total.
// @Tags movies
// @Accept json
// @Produce json
// @Param genre query int false "Genre ID"
// @Param year query int false "Release year"
// @Param actor query int false "Actor ID"
// @Param page query int false "Page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} utils.StandardResponse{data=[]models.Movie,meta=utils.PaginationMeta} "List of movies"
// @Failure 400 {object} utils.StandardResponse "Invalid query parameter"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	ctx := c.Context()

	var filter models.MovieFilter
	if v := c.Query("genre"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
		}
		genreID := uint(id)
		filter.GenreID = &genreID
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid year")
		}
		filter.Year = &year
	}
	if v := c.Query("actor"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid actor ID")
		}
		actorID := uint(id)
		filter.ActorID = &actorID
	}

	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid page")
	}
	size, err := strconv.Atoi(c.Query("size", "0"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid size")
	}

	movies, total, served, err := h.service.ListMovies(ctx, filter, models.PageRequest{Page: page, Size: size})
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve movies")
	}

	meta := utils.CreatePaginationMeta(served.Page, served.Size, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// SearchMovies godoc
// @Summary Search movies by title
// @Description Case-insensitive substring match on the title, unpaginated
// @Tags movies
// @Produce json
// @Param title query string true "Title fragment"
// @Success 200 {object} utils.StandardResponse{data=[]models.Movie} "Matching movies"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/search [get]
func (h *MovieHandler) SearchMovies(c *fiber.Ctx) error {
	movies, err := h.service.SearchMovies(c.Context(), c.Query("title"))
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to search movies")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie with its genres and actors
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse{data=models.Movie} "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	movie, err := h.service.GetMovieByID(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// CreateMovie godoc
// @Summary Create a new movie
// @Description Create a movie attached to existing genres and actors
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie request object"
// @Success 201 {object} utils.StandardResponse{data=models.Movie} "Movie created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 404 {object} utils.StandardResponse "Referenced genre or actor not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, h.logger, err, "Invalid request body")
	}

	movie, err := h.service.CreateMovie(c.Context(), services.MovieInput{
		Title:       req.Title,
		ReleaseYear: *req.ReleaseYear,
		Duration:    *req.Duration,
		GenreIDs:    refIDs(req.Genres),
		ActorIDs:    refIDs(req.Actors),
	})
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to create movie")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully", movie)
}

// UpdateMovie godoc
// @Summary Partially update a movie
// @Description Omitted fields are kept. A non-empty genres or actors list replaces that association; an omitted or empty list leaves it untouched.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieUpdateRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse{data=models.Movie} "Movie updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie, genre or actor not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [patch]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	var req MovieUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, h.logger, err, "Invalid request body")
	}

	movie, err := h.service.UpdateMovie(c.Context(), id, services.MoviePatch{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Duration:    req.Duration,
		GenreIDs:    refIDs(req.Genres),
		ActorIDs:    refIDs(req.Actors),
	})
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to update movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie updated successfully", movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie and its genre and actor links. Genres and actors are kept.
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie deleted successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	if err := h.service.DeleteMovie(c.Context(), id); err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to delete movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie deleted successfully", nil)
}

// AddActors godoc
// @Summary Add actors to a movie
// @Description Union the given actors into the movie's cast. Existing cast members are never removed.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param actors body AddActorsRequest true "Actor IDs"
// @Success 200 {object} utils.StandardResponse{data=models.Movie} "Actors added successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie or actor not found"
// @Router /movies/{id}/actors [post]
func (h *MovieHandler) AddActors(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	var req AddActorsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, h.logger, err, "Invalid request body")
	}

	movie, err := h.service.AddActors(c.Context(), id, req.ActorIDs)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to add actors")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Actors added successfully", movie)
}

// GetMovieActors godoc
// @Summary List a movie's actors
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse{data=[]models.Actor} "Cast of the movie"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/actors [get]
func (h *MovieHandler) GetMovieActors(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	actors, err := h.service.GetMovieActors(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err, "Failed to retrieve actors")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Actors retrieved successfully", actors)
}

// parseID reads a positive :id path parameter.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
