package routes

import (
	"movie-catalog/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Movies *handlers.MovieHandler
	Genres *handlers.GenreHandler
	Actors *handlers.ActorHandler
	Export *handlers.ExportHandler
}

func Setup(app *fiber.App, h Handlers) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Movie routes; static paths go before /:id
	movies := v1.Group("/movies")
	{
		movies.Get("/", h.Movies.GetAllMovies)
		movies.Get("/search", h.Movies.SearchMovies)
		movies.Get("/export", h.Export.ExportMovies)
		movies.Post("/export/archive", h.Export.ArchiveMovies)
		movies.Post("/", h.Movies.CreateMovie)
		movies.Get("/:id", h.Movies.GetMovieByID)
		movies.Patch("/:id", h.Movies.UpdateMovie)
		movies.Delete("/:id", h.Movies.DeleteMovie)
		movies.Get("/:id/actors", h.Movies.GetMovieActors)
		movies.Post("/:id/actors", h.Movies.AddActors)
	}

	genres := v1.Group("/genres")
	{
		genres.Get("/", h.Genres.GetAllGenres)
		genres.Post("/", h.Genres.CreateGenre)
		genres.Get("/:id", h.Genres.GetGenreByID)
		genres.Patch("/:id", h.Genres.UpdateGenre)
		genres.Delete("/:id", h.Genres.DeleteGenre)
	}

	actors := v1.Group("/actors")
	{
		actors.Get("/", h.Actors.GetAllActors)
		actors.Post("/", h.Actors.CreateActor)
		actors.Get("/:id", h.Actors.GetActorByID)
		actors.Patch("/:id", h.Actors.UpdateActor)
		actors.Delete("/:id", h.Actors.DeleteActor)
		actors.Get("/:id/movies", h.Actors.GetActorMovies)
		actors.Put("/:id/movies", h.Actors.ReplaceActorMovies)
	}
}
