package services

import (
	"context"
	"errors"
	"testing"

	"movie-catalog/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGenre_NameRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	genre, err := f.genres.CreateGenre(ctx, "  Thriller ")
	require.NoError(t, err)
	assert.Equal(t, "Thriller", genre.Name)

	_, err = f.genres.CreateGenre(ctx, "Thriller")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Equal(t, "genre with name 'Thriller' already exists", err.Error())

	_, err = f.genres.CreateGenre(ctx, " ")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUpdateGenre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	action := f.genre(t, "Action")
	f.genre(t, "Drama")

	unchanged, err := f.genres.UpdateGenre(ctx, action.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Action", unchanged.Name)

	name := "Action"
	same, err := f.genres.UpdateGenre(ctx, action.ID, &name)
	require.NoError(t, err)
	assert.Equal(t, "Action", same.Name)

	name = "Drama"
	_, err = f.genres.UpdateGenre(ctx, action.ID, &name)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	name = "Adventure"
	renamed, err := f.genres.UpdateGenre(ctx, action.ID, &name)
	require.NoError(t, err)
	assert.Equal(t, "Adventure", renamed.Name)

	_, err = f.genres.UpdateGenre(ctx, 999, &name)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteGenre_RefusedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	action := f.genre(t, "Action")
	f.movie(t, "Heat", 1995, ids(action.ID), nil)
	f.movie(t, "Ronin", 1998, ids(action.ID), nil)

	err := f.genres.DeleteGenre(ctx, action.ID, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Equal(t, "cannot delete genre 'Action' because it is associated with 2 movies", err.Error())

	var conflict *apperror.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, 2, conflict.Count)

	_, err = f.genres.GetGenreByID(ctx, action.ID)
	require.NoError(t, err)
	movies, err := f.store.Movies().FindAllByGenreID(ctx, action.ID)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestDeleteGenre_ForceDetachesMovies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	action := f.genre(t, "Action")
	crime := f.genre(t, "Crime")
	a := f.actor(t, "A")
	heat := f.movie(t, "Heat", 1995, ids(action.ID, crime.ID), ids(a.ID))

	require.NoError(t, f.genres.DeleteGenre(ctx, action.ID, true))

	_, err := f.genres.GetGenreByID(ctx, action.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	reloaded, err := f.movies.GetMovieByID(ctx, heat.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{crime.ID}, reloaded.GenreIDs())
	assert.Equal(t, []uint{a.ID}, reloaded.ActorIDs())
}

func TestDeleteGenre_Unreferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	genre := f.genre(t, "Western")

	require.NoError(t, f.genres.DeleteGenre(ctx, genre.ID, false))

	err := f.genres.DeleteGenre(ctx, genre.ID, false)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
