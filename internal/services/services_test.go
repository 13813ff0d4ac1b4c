package services

import (
	"context"
	"testing"

	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  repository.Store
	movies MovieService
	genres GenreService
	actors ActorService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	logger := testutil.Logger()
	return &fixture{
		store:  store,
		movies: NewMovieService(store, config.PaginationConfig{DefaultSize: 10, MaxSize: 100}, logger),
		genres: NewGenreService(store, logger),
		actors: NewActorService(store, logger),
	}
}

func (f *fixture) genre(t *testing.T, name string) *models.Genre {
	t.Helper()
	g, err := f.genres.CreateGenre(context.Background(), name)
	require.NoError(t, err)
	return g
}

func (f *fixture) actor(t *testing.T, name string) *models.Actor {
	t.Helper()
	a, err := f.actors.CreateActor(context.Background(), name, nil)
	require.NoError(t, err)
	return a
}

func (f *fixture) movie(t *testing.T, title string, year int, genres []uint, actors []uint) *models.Movie {
	t.Helper()
	m, err := f.movies.CreateMovie(context.Background(), MovieInput{
		Title:       title,
		ReleaseYear: year,
		Duration:    120,
		GenreIDs:    genres,
		ActorIDs:    actors,
	})
	require.NoError(t, err)
	return m
}

func ids(values ...uint) []uint { return values }
